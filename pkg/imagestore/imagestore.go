// Package imagestore abstracts binary-object hosting for uploaded images.
package imagestore

import "io"

// Image describes a stored object. The identifier is recorded alongside the
// URL at write time, so later deletions never have to reverse-parse it out of
// the URL string.
type Image struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Store is the hosting capability handed to the services. Save persists the
// object and returns where it lives; Delete removes it by its identifier.
type Store interface {
	Save(filename string, r io.Reader) (Image, error)
	Delete(id string) error
}
