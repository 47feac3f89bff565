// Package formregistryservice owns form configuration authoring and the
// lookup of the active survey and task forms.
//
// Configs are immutable once published. Editing a form publishes a new
// version; activation swaps the single active version of a kind atomically.
package formregistryservice
