package types

// ComponentKind is the category a changed path falls into. It decides which
// companion files have to travel with the change.
type ComponentKind string

const (
	// KindPlainFile is a standalone file with no companions
	KindPlainFile ComponentKind = "plain"
	// KindMetaDescriptorPair is a file paired with its X-meta.xml descriptor
	KindMetaDescriptorPair ComponentKind = "meta-pair"
	// KindBundle is an atomic multi-file component (aura, lwc, experiences)
	KindBundle ComponentKind = "bundle"
	// KindStaticResourceOrDocument is a static resource or a document folder
	KindStaticResourceOrDocument ComponentKind = "static-resource"
	// KindObjectTranslation is a language-and-object translation folder
	KindObjectTranslation ComponentKind = "object-translation"
	// KindExcluded is never copied (test fixtures, paths outside the source)
	KindExcluded ComponentKind = "excluded"
)

// BundleKind distinguishes the bundle flavours
type BundleKind string

const (
	BundleNone       BundleKind = ""
	BundleAura       BundleKind = "aura"
	BundleLWC        BundleKind = "lwc"
	BundleExperience BundleKind = "experience"
)

// CopyUnit is the smallest file-or-directory that has to be copied whole for
// one changed path, plus the companion paths that must accompany it.
// Root and Extras are relative to the source folder, slash separated.
type CopyUnit struct {
	Root   string
	Kind   ComponentKind
	Bundle BundleKind
	Extras []string

	// Rule is the name of the rule that produced the unit
	Rule string
	// Reason explains an exclusion
	Reason string
}

// Paths returns the root followed by the extras
func (u CopyUnit) Paths() []string {
	out := make([]string, 0, len(u.Extras)+1)
	out = append(out, u.Root)
	return append(out, u.Extras...)
}

// Excluded reports whether the unit must not be copied
func (u CopyUnit) Excluded() bool {
	return u.Kind == KindExcluded
}
