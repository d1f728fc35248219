package reporting

import "fmt"

// PersonError attaches the chinese name a roster operation was about.
type PersonError struct {
	Name string
	Err  error
}

func (e *PersonError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *PersonError) Unwrap() error {
	return e.Err
}
