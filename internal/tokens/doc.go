// SPDX-License-Identifier: MPL-2.0

// Package tokens implements the token context shared by provisioning steps.
//
// A Parser resolves placeholders such as {site}, {parameter:Department} or
// {webpartid:News} in template text. Provisioning steps append tokens as they
// learn remote identifiers, so later steps can reference them.
package tokens
