// Package loader registers HTTP features with the serve command.
//
// A feature bundles routes behind a name and an enabled switch:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.LoadAll mounts every enabled feature in registration order and stops
// at the first error. Disabled features are logged and skipped.
package loader
