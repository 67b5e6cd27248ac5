package rules

import (
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/paths"
	"github.com/arthur-debert/sfdelta/pkg/types"
)

// Segment names and suffixes the default rules key on
const (
	SegObjectTranslations = "objectTranslations"
	SegStaticResources    = "staticresources"
	SegDocuments          = "documents"
	SegAura               = "aura"
	SegLWC                = "lwc"
	SegExperiences        = "experiences"
	SegTests              = "__tests__"

	MetaSuffix          = "-meta.xml"
	ResourceMetaSuffix  = ".resource-meta.xml"
	DocFolderMetaSuffix = ".documentFolder-meta.xml"
	SiteMetaSuffix      = ".site-meta.xml"
)

// DefaultRules returns the classification table in priority order
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "object-translation",
			Kind:    types.KindObjectTranslation,
			Match:   hasSegment(SegObjectTranslations),
			Resolve: resolveObjectTranslation,
		},
		{
			Name:    "static-resource",
			Kind:    types.KindStaticResourceOrDocument,
			Match:   hasSegment(SegStaticResources, SegDocuments),
			Resolve: resolveStaticResource,
		},
		{
			Name:    "lwc-tests",
			Kind:    types.KindExcluded,
			Match:   isLWCTest,
			Resolve: excludeLWCTest,
		},
		{
			Name:    "bundle",
			Kind:    types.KindBundle,
			Match:   hasSegment(SegAura, SegLWC, SegExperiences),
			Resolve: resolveBundle,
		},
		{
			Name:    "meta-pair",
			Kind:    types.KindMetaDescriptorPair,
			Match:   isMetaPair,
			Resolve: resolveMetaPair,
		},
		{
			Name:    "plain",
			Kind:    types.KindPlainFile,
			Match:   func(*Context, Target) bool { return true },
			Resolve: resolvePlain,
		},
	}
}

func hasSegment(names ...string) func(*Context, Target) bool {
	return func(_ *Context, t Target) bool {
		i, _ := paths.IndexAny(t.Segments, names...)
		return i >= 0
	}
}

func isLWCTest(_ *Context, t Target) bool {
	return paths.Index(t.Segments, SegLWC) >= 0 && paths.Index(t.Segments, SegTests) >= 0
}

func isMetaPair(ctx *Context, t Target) bool {
	if strings.HasSuffix(t.Rel, MetaSuffix) {
		return true
	}
	return ctx.Exists(t.Rel + MetaSuffix)
}

// folderBelow returns the path of the segment directly below index i, and
// whether the target sits deeper than that segment (i.e. it is a folder).
func folderBelow(t Target, i int) (string, bool) {
	if i+1 >= len(t.Segments) {
		return "", false
	}
	return paths.Join(t.Segments[:i+2]...), i+2 < len(t.Segments)
}

func resolveObjectTranslation(_ *Context, t Target) types.CopyUnit {
	i := paths.Index(t.Segments, SegObjectTranslations)
	folder, nested := folderBelow(t, i)
	if !nested {
		return types.CopyUnit{Root: t.Rel, Kind: types.KindObjectTranslation}
	}
	return types.CopyUnit{Root: folder, Kind: types.KindObjectTranslation}
}

func resolveStaticResource(ctx *Context, t Target) types.CopyUnit {
	i, seg := paths.IndexAny(t.Segments, SegStaticResources, SegDocuments)
	container, nested := folderBelow(t, i)
	if container == "" {
		// the staticresources folder itself was reported
		return types.CopyUnit{Root: t.Rel, Kind: types.KindStaticResourceOrDocument}
	}

	if nested || ctx.IsDir(container) {
		suffix := ResourceMetaSuffix
		if seg == SegDocuments {
			suffix = DocFolderMetaSuffix
		}
		return types.CopyUnit{
			Root:   container,
			Kind:   types.KindStaticResourceOrDocument,
			Extras: ctx.Existing(container + suffix),
		}
	}

	// Single-file resource: X.resource, X.resource-meta.xml, X.json ...
	parent := paths.Join(t.Segments[:len(t.Segments)-1]...)
	base := baseName(t.Name())
	var extras []string
	for _, name := range ctx.List(parent) {
		if name == t.Name() || baseName(name) != base {
			continue
		}
		extras = append(extras, paths.Join(parent, name))
	}
	return types.CopyUnit{
		Root:   t.Rel,
		Kind:   types.KindStaticResourceOrDocument,
		Extras: extras,
	}
}

func excludeLWCTest(_ *Context, t Target) types.CopyUnit {
	return types.CopyUnit{
		Root:   t.Rel,
		Kind:   types.KindExcluded,
		Bundle: types.BundleLWC,
		Reason: "lwc test fixtures are not deployable",
	}
}

func resolveBundle(ctx *Context, t Target) types.CopyUnit {
	i, seg := paths.IndexAny(t.Segments, SegAura, SegLWC, SegExperiences)
	folder, nested := folderBelow(t, i)

	if seg == SegExperiences {
		if strings.HasSuffix(t.Name(), SiteMetaSuffix) || !nested {
			return types.CopyUnit{Root: t.Rel, Kind: types.KindBundle, Bundle: types.BundleExperience}
		}
		return types.CopyUnit{
			Root:   folder,
			Kind:   types.KindBundle,
			Bundle: types.BundleExperience,
			Extras: ctx.Existing(folder + SiteMetaSuffix),
		}
	}

	bundle := types.BundleAura
	if seg == SegLWC {
		bundle = types.BundleLWC
	}
	if !nested {
		// jsconfig.json, .eslintrc.json and friends live directly in lwc/
		return types.CopyUnit{Root: t.Rel, Kind: types.KindPlainFile, Bundle: bundle}
	}
	return types.CopyUnit{Root: folder, Kind: types.KindBundle, Bundle: bundle}
}

func resolveMetaPair(ctx *Context, t Target) types.CopyUnit {
	if strings.HasSuffix(t.Rel, MetaSuffix) {
		return types.CopyUnit{
			Root:   t.Rel,
			Kind:   types.KindMetaDescriptorPair,
			Extras: ctx.Existing(strings.TrimSuffix(t.Rel, MetaSuffix)),
		}
	}
	return types.CopyUnit{
		Root:   t.Rel,
		Kind:   types.KindMetaDescriptorPair,
		Extras: ctx.Existing(t.Rel + MetaSuffix),
	}
}

func resolvePlain(_ *Context, t Target) types.CopyUnit {
	return types.CopyUnit{Root: t.Rel, Kind: types.KindPlainFile}
}

// baseName returns the name up to its first dot
func baseName(name string) string {
	if i := strings.Index(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
