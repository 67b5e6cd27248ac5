package baseline

import (
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
)

// DefaultKey is the settings record name the deploy marker is stored under
const DefaultKey = "VBTDeployKey"

// Managed package namespaces
const (
	PackageCMT = "cmt"
	PackageINS = "ins"

	NamespaceCMT = "vlocity_cmt__"
	NamespaceINS = "vlocity_ins__"
)

// Settings object the namespaced marker lives in
const (
	SettingsObject = "GeneralSettings__c"
	NameField      = "Name"
	ValueField     = "Value__c"
)

// KeySpec describes which settings record holds the marker
type KeySpec struct {
	// Key replaces DefaultKey when set
	Key string
	// Suffix is appended to the key (e.g. "EPC" gives VBTDeployKeyEPC)
	Suffix string
	// Package selects the managed package namespace: cmt or ins
	Package string

	// CustomObject and CustomKey select an un-namespaced custom settings
	// object. They must be given together.
	CustomObject string
	CustomKey    string
}

// Validate rejects contradictory combinations before any lookup happens
func (k KeySpec) Validate() error {
	obj := strings.TrimSpace(k.CustomObject)
	key := strings.TrimSpace(k.CustomKey)
	if obj != "" && key == "" {
		return errors.New(errors.ErrConfiguration,
			"a custom settings key is required when a custom settings object is given").
			WithDetail("customObject", obj)
	}
	if key != "" && obj == "" {
		return errors.New(errors.ErrConfiguration,
			"a custom settings object is required when a custom settings key is given").
			WithDetail("customKey", key)
	}
	if obj == "" && k.Package != "" {
		if _, err := Namespace(k.Package); err != nil {
			return err
		}
	}
	return nil
}

// Custom reports whether a custom settings object is used
func (k KeySpec) Custom() bool {
	return strings.TrimSpace(k.CustomObject) != ""
}

// LookupKey returns the record name to look up
func (k KeySpec) LookupKey() string {
	if k.Custom() {
		return strings.TrimSpace(k.CustomKey)
	}
	key := strings.TrimSpace(k.Key)
	if key == "" {
		key = DefaultKey
	}
	return key + strings.TrimSpace(k.Suffix)
}

// Object returns the settings object (table) holding the record
func (k KeySpec) Object() (string, error) {
	if k.Custom() {
		return strings.TrimSpace(k.CustomObject), nil
	}
	ns, err := Namespace(k.Package)
	if err != nil {
		return "", err
	}
	return ns + SettingsObject, nil
}

// ValueColumn returns the field holding the marker
func (k KeySpec) ValueColumn() (string, error) {
	if k.Custom() {
		return ValueField, nil
	}
	ns, err := Namespace(k.Package)
	if err != nil {
		return "", err
	}
	return ns + ValueField, nil
}

// Namespace maps a package name to its namespace prefix
func Namespace(pkg string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(pkg)) {
	case PackageCMT:
		return NamespaceCMT, nil
	case PackageINS:
		return NamespaceINS, nil
	default:
		return "", errors.Newf(errors.ErrConfiguration,
			"package has to be either %s or %s, got %q", PackageCMT, PackageINS, pkg).
			WithDetail("package", pkg)
	}
}
