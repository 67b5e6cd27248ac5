// Package rules maps a changed path to the copy unit that keeps it deployable.
//
// The mapping is an ordered rule table. Each rule pairs a predicate over the
// path's segments with a resolver that produces a types.CopyUnit. Rules are
// evaluated in order and the first matching rule wins, because several
// patterns overlap structurally (a static resource may contain a folder named
// lwc, an lwc bundle may contain __tests__).
//
// # Default Rules
//
//  1. object-translation: objectTranslations/<Lang-Object>/...  → the whole folder
//  2. static-resource:    staticresources/<Res>/... or documents/<Folder>/...
//     → the whole folder plus its .resource-meta.xml / .documentFolder-meta.xml;
//     a single-file resource brings every sibling sharing its base name
//  3. lwc-tests:          lwc/.../__tests__/...  → excluded
//  4. bundle:             aura/<cmp>/..., lwc/<cmp>/... → the bundle folder;
//     experiences/<site>/<type>/... → the site folder plus <site>.site-meta.xml
//  5. meta-pair:          X.y-meta.xml ↔ X.y travel together
//  6. plain:              the file alone
//
// All paths handled here are relative to the source folder and slash
// separated; resolvers consult the filesystem through paths.Layout.
package rules
