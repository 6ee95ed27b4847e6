// SPDX-License-Identifier: MPL-2.0

package pagetemplate

import "slices"

type (
	// RoleAssignment grants a role definition to a principal.
	RoleAssignment struct {
		Principal      string `json:"principal"`
		RoleDefinition string `json:"role_definition"`
	}

	// ObjectSecurity describes the permissions of a page.
	//
	// The descriptor keeps a non-owning reference to the template of the page
	// it is attached to. The reference is context only and is ignored by Equal.
	ObjectSecurity struct {
		CopyRoleAssignments bool             `json:"copy_role_assignments"`
		ClearSubscopes      bool             `json:"clear_subscopes"`
		RoleAssignments     []RoleAssignment `json:"role_assignments,omitempty"`

		parent *Template
	}
)

// ParentTemplate returns the template of the page this descriptor is attached to,
// or nil when detached.
func (s *ObjectSecurity) ParentTemplate() *Template {
	if s == nil {
		return nil
	}
	return s.parent
}

// Equal reports value equality. Two nil descriptors are equal; a nil and a
// non-nil descriptor are not.
func (s *ObjectSecurity) Equal(other *ObjectSecurity) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	return s.CopyRoleAssignments == other.CopyRoleAssignments &&
		s.ClearSubscopes == other.ClearSubscopes &&
		slices.Equal(s.RoleAssignments, other.RoleAssignments)
}

// Clone returns a detached copy.
func (s *ObjectSecurity) Clone() *ObjectSecurity {
	if s == nil {
		return nil
	}
	return &ObjectSecurity{
		CopyRoleAssignments: s.CopyRoleAssignments,
		ClearSubscopes:      s.ClearSubscopes,
		RoleAssignments:     slices.Clone(s.RoleAssignments),
	}
}
