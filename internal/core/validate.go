package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"modulemd/internal/types"
)

// ValidateStream runs the structural invariants required of a module
// stream regardless of version, plus the version-specific checks the
// stream itself knows about. Validation is pure: it never mutates the
// stream and always returns the same result for the same input.
func ValidateStream(ctx context.Context, stream types.ModuleStream) error {
	identity := stream.StreamIdentity()
	assert.NotEmpty(ctx, identity.Name, "module stream name must be set before it can be validated")
	assert.NotEmpty(ctx, identity.Stream, "module stream's stream name must be set before it can be validated")
	if identity.Name == "" || identity.Stream == "" {
		return NewError(types.ErrorValidate, "module stream must have a name and a stream")
	}
	if err := stream.Validate(); err != nil {
		return WrapError(types.ErrorValidate, err.Error(), err)
	}
	return nil
}

// ValidateDefaults checks a single DefaultsV1 document: it must name a
// module. The poisoned-default-stream rules belong to the merge in
// policies and are not checked here.
func ValidateDefaults(ctx context.Context, defaults *types.DefaultsV1) error {
	assert.NotEmpty(ctx, defaults.ModuleName, "defaults document must name a module before it can be validated")
	if err := defaults.Validate(); err != nil {
		return WrapError(types.ErrorValidate, err.Error(), err)
	}
	return nil
}

// ValidateTranslation checks a Translation document.
func ValidateTranslation(ctx context.Context, translation *types.Translation) error {
	assert.NotEmpty(ctx, translation.ModuleName, "translation document must name a module before it can be validated")
	assert.NotEmpty(ctx, translation.ModuleStream, "translation document must name a stream before it can be validated")
	if err := translation.Validate(); err != nil {
		return WrapError(types.ErrorValidate, err.Error(), err)
	}
	return nil
}

// ValidateObsoletes checks an Obsoletes document.
func ValidateObsoletes(ctx context.Context, obsoletes *types.Obsoletes) error {
	assert.NotEmpty(ctx, obsoletes.ModuleName, "obsoletes document must name a module before it can be validated")
	if err := obsoletes.Validate(); err != nil {
		return WrapError(types.ErrorValidate, err.Error(), err)
	}
	return nil
}

// ValidatePackager checks a PackagerV3 document.
func ValidatePackager(ctx context.Context, packager *types.PackagerV3) error {
	assert.NotEmpty(ctx, packager.ModuleName, "packager document must name a module before it can be validated")
	assert.NotEmpty(ctx, packager.StreamName, "packager document must name a stream before it can be validated")
	if err := packager.Validate(); err != nil {
		return WrapError(types.ErrorValidate, err.Error(), err)
	}
	return nil
}
