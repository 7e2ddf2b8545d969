package importall

import "fmt"

// ConfigurationError reports malformed options (a priority specification of
// an unsupported shape). It is always raised before any module is loaded or
// any table is touched, so a bad configuration never has partial effect.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InterfaceError reports a target table that cannot support the required
// read/write/delete operations. It is raised before any name is written;
// partial application never occurs.
type InterfaceError struct {
	Reason string
}

func (e *InterfaceError) Error() string {
	return fmt.Sprintf("unusable symbol table: %s", e.Reason)
}
