package report

import (
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/sfdelta/pkg/assembler"
	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/beevik/etree"
)

// ManifestName is the file written at the root of the delta folder
const ManifestName = "delta-manifest.xml"

// BuildManifest returns the XML document describing a result
func BuildManifest(r *assembler.Result) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("DeltaPackage")
	root.CreateAttr("outcome", string(r.Outcome))
	root.CreateAttr("key", r.Key)
	if r.Marker != "" {
		root.CreateAttr("marker", r.Marker)
	}
	root.CreateAttr("files", strconv.Itoa(r.FilesCopied))

	for _, u := range r.Units {
		if u.Status != assembler.StatusCopied {
			continue
		}
		el := root.CreateElement("unit")
		el.CreateAttr("kind", string(u.Unit.Kind))
		if u.Unit.Bundle != "" {
			el.CreateAttr("bundle", string(u.Unit.Bundle))
		}
		el.CreateAttr("rule", u.Unit.Rule)
		el.CreateElement("changed").SetText(u.Path)
		el.CreateElement("root").SetText(u.Unit.Root)
		for _, extra := range u.Unit.Extras {
			el.CreateElement("extra").SetText(extra)
		}
	}

	doc.Indent(2)
	return doc
}

// WriteManifest writes the manifest into the delta folder. It does nothing
// when the run produced no delta folder.
func WriteManifest(fs types.FS, r *assembler.Result) (string, error) {
	if r.DryRun || !r.Packaged() {
		return "", nil
	}
	data, err := BuildManifest(r).WriteToBytes()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot encode manifest")
	}
	path := filepath.Join(r.DeltaFolder, ManifestName)
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "cannot write manifest %s", path).
			WithDetail("path", path)
	}
	return path, nil
}
