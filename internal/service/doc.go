// Package service contains the generation pipeline orchestration: resolving
// user credentials, invoking the provider adapter selected by the user's
// settings, validating the structured result, and persisting it atomically.
package service
