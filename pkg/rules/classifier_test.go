// Test Type: Unit Test
// Description: Tests for the ordered rule table that maps changed paths to copy units

package rules_test

import (
	"testing"

	"github.com/arthur-debert/sfdelta/pkg/rules"
	"github.com/arthur-debert/sfdelta/pkg/testutil"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/stretchr/testify/assert"
)

const def = "force-app/main/default/"

func sourceTree(t *testing.T) *testutil.TestEnvironment {
	return testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly, map[string]string{
		def + "lwc/myComp/myComp.js":                                      "js",
		def + "lwc/myComp/myComp.html":                                    "<template/>",
		def + "lwc/myComp/myComp.js-meta.xml":                             "<meta/>",
		def + "lwc/myComp/__tests__/myComp.test.js":                       "test",
		def + "lwc/jsconfig.json":                                         "{}",
		def + "aura/Widget/Widget.cmp":                                    "<aura/>",
		def + "aura/Widget/WidgetController.js":                           "ctrl",
		def + "experiences/site1/views/home.json":                         "{}",
		def + "experiences/site1/routes/home.json":                        "{}",
		def + "experiences/site1.site-meta.xml":                           "<site/>",
		def + "staticresources/MyRes/asset.png":                           "png",
		def + "staticresources/MyRes/css/app.css":                         "css",
		def + "staticresources/MyRes.resource-meta.xml":                   "<res/>",
		def + "staticresources/Logo.png":                                  "png",
		def + "staticresources/Logo.resource-meta.xml":                    "<res/>",
		def + "staticresources/LogoBig.png":                               "png",
		def + "documents/Shared/contract.pdf":                             "pdf",
		def + "documents/Shared.documentFolder-meta.xml":                  "<folder/>",
		def + "objectTranslations/Account-en_US/Account-en_US.objectTranslation-meta.xml": "<t/>",
		def + "objectTranslations/Account-en_US/Name__c.fieldTranslation-meta.xml":       "<f/>",
		def + "classes/Foo.cls":                                           "class Foo {}",
		def + "classes/Foo.cls-meta.xml":                                  "<meta/>",
		def + "classes/Bar.cls":                                           "class Bar {}",
		def + "labels/CustomLabels.labels-meta.xml":                       "<labels/>",
		def + "lwcUtils/readme.txt":                                       "not a bundle",
	})
}

func TestResolve_Bundles(t *testing.T) {
	env := sourceTree(t)
	c := rules.NewClassifier(env.FS, env.Layout)

	t.Run("lwc_file_maps_to_component_folder", func(t *testing.T) {
		unit := c.Resolve(def + "lwc/myComp/myComp.js")
		assert.Equal(t, "main/default/lwc/myComp", unit.Root)
		assert.Equal(t, types.KindBundle, unit.Kind)
		assert.Equal(t, types.BundleLWC, unit.Bundle)
		assert.Empty(t, unit.Extras)
		assert.Equal(t, "bundle", unit.Rule)
	})

	t.Run("nested_bundle_file_maps_to_component_folder", func(t *testing.T) {
		unit := c.Resolve(def + "lwc/myComp/utils/format/dates.js")
		assert.Equal(t, "main/default/lwc/myComp", unit.Root)
		assert.Equal(t, types.BundleLWC, unit.Bundle)

		unit = c.Resolve(def + "aura/Widget/styles/Widget.css")
		assert.Equal(t, "main/default/aura/Widget", unit.Root)
		assert.Equal(t, types.BundleAura, unit.Bundle)
	})

	t.Run("lwc_descriptor_maps_to_same_folder", func(t *testing.T) {
		unit := c.Resolve(def + "lwc/myComp/myComp.js-meta.xml")
		assert.Equal(t, "main/default/lwc/myComp", unit.Root)
	})

	t.Run("lwc_tests_are_excluded", func(t *testing.T) {
		unit := c.Resolve(def + "lwc/myComp/__tests__/myComp.test.js")
		assert.True(t, unit.Excluded())
		assert.Equal(t, "lwc-tests", unit.Rule)
	})

	t.Run("loose_lwc_file_is_plain", func(t *testing.T) {
		unit := c.Resolve(def + "lwc/jsconfig.json")
		assert.Equal(t, "main/default/lwc/jsconfig.json", unit.Root)
		assert.Equal(t, types.KindPlainFile, unit.Kind)
	})

	t.Run("aura_file_maps_to_component_folder", func(t *testing.T) {
		unit := c.Resolve(def + "aura/Widget/WidgetController.js")
		assert.Equal(t, "main/default/aura/Widget", unit.Root)
		assert.Equal(t, types.BundleAura, unit.Bundle)
	})

	t.Run("experience_file_maps_to_site_with_descriptor", func(t *testing.T) {
		unit := c.Resolve(def + "experiences/site1/views/home.json")
		assert.Equal(t, "main/default/experiences/site1", unit.Root)
		assert.Equal(t, types.BundleExperience, unit.Bundle)
		assert.Equal(t, []string{"main/default/experiences/site1.site-meta.xml"}, unit.Extras)
	})

	t.Run("experience_descriptor_alone", func(t *testing.T) {
		unit := c.Resolve(def + "experiences/site1.site-meta.xml")
		assert.Equal(t, "main/default/experiences/site1.site-meta.xml", unit.Root)
		assert.Empty(t, unit.Extras)
	})

	t.Run("segment_match_is_exact", func(t *testing.T) {
		unit := c.Resolve(def + "lwcUtils/readme.txt")
		assert.Equal(t, types.KindPlainFile, unit.Kind)
		assert.Equal(t, "main/default/lwcUtils/readme.txt", unit.Root)
	})

	t.Run("backslash_separators", func(t *testing.T) {
		unit := c.Resolve(`force-app\main\default\aura\Widget\Widget.cmp`)
		assert.Equal(t, "main/default/aura/Widget", unit.Root)
	})
}

func TestResolve_StaticResourcesAndDocuments(t *testing.T) {
	env := sourceTree(t)
	c := rules.NewClassifier(env.FS, env.Layout)

	t.Run("folder_resource", func(t *testing.T) {
		unit := c.Resolve(def + "staticresources/MyRes/asset.png")
		assert.Equal(t, "main/default/staticresources/MyRes", unit.Root)
		assert.Equal(t, types.KindStaticResourceOrDocument, unit.Kind)
		assert.Equal(t, []string{"main/default/staticresources/MyRes.resource-meta.xml"}, unit.Extras)
	})

	t.Run("deeply_nested_folder_resource", func(t *testing.T) {
		unit := c.Resolve(def + "staticresources/MyRes/css/app.css")
		assert.Equal(t, "main/default/staticresources/MyRes", unit.Root)
	})

	t.Run("single_file_resource_brings_siblings", func(t *testing.T) {
		unit := c.Resolve(def + "staticresources/Logo.png")
		assert.Equal(t, "main/default/staticresources/Logo.png", unit.Root)
		assert.Equal(t, []string{"main/default/staticresources/Logo.resource-meta.xml"}, unit.Extras)
	})

	t.Run("resource_descriptor_brings_content", func(t *testing.T) {
		unit := c.Resolve(def + "staticresources/Logo.resource-meta.xml")
		assert.Equal(t, "main/default/staticresources/Logo.resource-meta.xml", unit.Root)
		assert.Equal(t, []string{"main/default/staticresources/Logo.png"}, unit.Extras)
	})

	t.Run("folder_resource_descriptor_brings_folder", func(t *testing.T) {
		unit := c.Resolve(def + "staticresources/MyRes.resource-meta.xml")
		assert.Equal(t, []string{"main/default/staticresources/MyRes"}, unit.Extras)
	})

	t.Run("document_folder", func(t *testing.T) {
		unit := c.Resolve(def + "documents/Shared/contract.pdf")
		assert.Equal(t, "main/default/documents/Shared", unit.Root)
		assert.Equal(t, []string{"main/default/documents/Shared.documentFolder-meta.xml"}, unit.Extras)
	})

	t.Run("deleted_folder_resource_still_maps_to_folder", func(t *testing.T) {
		unit := c.Resolve(def + "staticresources/Gone/file.js")
		assert.Equal(t, "main/default/staticresources/Gone", unit.Root)
		assert.Empty(t, unit.Extras)
	})
}

func TestResolve_ObjectTranslations(t *testing.T) {
	env := sourceTree(t)
	c := rules.NewClassifier(env.FS, env.Layout)

	unit := c.Resolve(def + "objectTranslations/Account-en_US/Account-en_US.objectTranslation-meta.xml")
	assert.Equal(t, "main/default/objectTranslations/Account-en_US", unit.Root)
	assert.Equal(t, types.KindObjectTranslation, unit.Kind)
	assert.Empty(t, unit.Extras)

	// objectTranslations wins over the meta-pair rule even for -meta.xml files
	unit = c.Resolve(def + "objectTranslations/Account-en_US/Name__c.fieldTranslation-meta.xml")
	assert.Equal(t, "main/default/objectTranslations/Account-en_US", unit.Root)
}

func TestResolve_MetaPairs(t *testing.T) {
	env := sourceTree(t)
	c := rules.NewClassifier(env.FS, env.Layout)

	t.Run("base_file_brings_descriptor", func(t *testing.T) {
		unit := c.Resolve(def + "classes/Foo.cls")
		assert.Equal(t, types.KindMetaDescriptorPair, unit.Kind)
		assert.Equal(t, "main/default/classes/Foo.cls", unit.Root)
		assert.Equal(t, []string{"main/default/classes/Foo.cls-meta.xml"}, unit.Extras)
	})

	t.Run("descriptor_brings_base_file", func(t *testing.T) {
		unit := c.Resolve(def + "classes/Foo.cls-meta.xml")
		assert.Equal(t, "main/default/classes/Foo.cls-meta.xml", unit.Root)
		assert.Equal(t, []string{"main/default/classes/Foo.cls"}, unit.Extras)
	})

	t.Run("descriptor_without_base", func(t *testing.T) {
		unit := c.Resolve(def + "labels/CustomLabels.labels-meta.xml")
		assert.Equal(t, types.KindMetaDescriptorPair, unit.Kind)
		assert.Empty(t, unit.Extras)
	})

	t.Run("file_without_descriptor_is_plain", func(t *testing.T) {
		unit := c.Resolve(def + "classes/Bar.cls")
		assert.Equal(t, types.KindPlainFile, unit.Kind)
		assert.Equal(t, "plain", unit.Rule)
	})
}

func TestResolve_OutsideSource(t *testing.T) {
	env := sourceTree(t)
	c := rules.NewClassifier(env.FS, env.Layout)

	unit := c.Resolve("scripts/apex/hello.apex")
	assert.True(t, unit.Excluded())
	assert.Equal(t, "outside-source", unit.Rule)

	kind, bundle := c.Classify(def + "lwc/myComp/myComp.html")
	assert.Equal(t, types.KindBundle, kind)
	assert.Equal(t, types.BundleLWC, bundle)
}

func TestCustomRuleTable(t *testing.T) {
	env := sourceTree(t)

	// A table without the lwc-tests row copies test fixtures as part of the bundle
	var table []rules.Rule
	for _, r := range rules.DefaultRules() {
		if r.Name != "lwc-tests" {
			table = append(table, r)
		}
	}
	c := rules.NewClassifierWithRules(table, env.FS, env.Layout)

	unit := c.Resolve(def + "lwc/myComp/__tests__/myComp.test.js")
	assert.Equal(t, "main/default/lwc/myComp", unit.Root)

	// An empty table falls back to a plain copy
	c = rules.NewClassifierWithRules(nil, env.FS, env.Layout)
	unit = c.Resolve(def + "lwc/myComp/myComp.js")
	assert.Equal(t, "fallback", unit.Rule)
	assert.Equal(t, "main/default/lwc/myComp/myComp.js", unit.Root)
}
