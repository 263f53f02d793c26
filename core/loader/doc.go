// Package loader registers the HTTP features of the service.
//
// A Feature names itself, reports whether it is enabled and mounts its routes
// on the router it is given:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps features in registration order. LoadAll mounts the enabled
// ones and returns their names; the first Load error stops loading.
package loader
