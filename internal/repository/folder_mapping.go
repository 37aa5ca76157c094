package repository

import "errors"

// ErrMappingNotFound is returned when a unit has no photo folder mapping.
var ErrMappingNotFound = errors.New("folder mapping not found")

// Storage keys for the unit -> folder mapping.
const (
	folderMappingHash       = "rental_units:folder_mappings"
	folderMappingCollection = "unit_folder_mappings"
)
