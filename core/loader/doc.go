// Package loader registers features and mounts their routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps features in registration order; LoadAll skips disabled ones and stops
// at the first load error.
package loader
