package validator

import (
	"regexp"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// HexColorPattern matches one palette entry, e.g. "#1A2b3C".
var HexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// NameRule palette/collection name rules
var NameRule = []vd.Rule{
	vd.Required,
	vd.RuneLength(1, 100),
}

// DescriptionRule optional description rules
var DescriptionRule = []vd.Rule{
	vd.RuneLength(0, 500),
}

// MessageRule share message rules
var MessageRule = []vd.Rule{
	vd.RuneLength(0, 500),
}

// ColorsRule palette color list rules
var ColorsRule = []vd.Rule{
	vd.Required,
	vd.Length(1, 10),
	vd.Each(vd.Match(HexColorPattern).Error("must be a hex color like #1A2B3C")),
}

// EmailRule required email rules
var EmailRule = []vd.Rule{
	vd.Required,
	is.Email,
}

// SignupPasswordRule signup/signin password rules
var SignupPasswordRule = []vd.Rule{
	vd.Required,
	vd.RuneLength(6, 72),
}

// ResetPasswordRule is stricter than signup on purpose; it mirrors the
// password-recovery policy (length plus character classes).
var ResetPasswordRule = []vd.Rule{
	vd.Required,
	vd.RuneLength(8, 72),
	vd.Match(regexp.MustCompile(`[A-Z]`)).Error("must contain at least one uppercase letter"),
	vd.Match(regexp.MustCompile(`[a-z]`)).Error("must contain at least one lowercase letter"),
	vd.Match(regexp.MustCompile(`[0-9]`)).Error("must contain at least one number"),
	vd.Match(regexp.MustCompile(`[^A-Za-z0-9]`)).Error("must contain at least one special character"),
}
