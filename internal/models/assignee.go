package models

import "fmt"

// Assignee is someone activities can be assigned to. Credentials live in the
// OS keyring, never in the store.
type Assignee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func (a *Assignee) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("assignee name cannot be empty")
	}
	if a.Username == "" {
		return fmt.Errorf("assignee username cannot be empty")
	}
	return nil
}
