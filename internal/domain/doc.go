// Package domain contains the core business entities and domain logic of
// the application: users, the places they own, and the validation rules
// both must satisfy. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
