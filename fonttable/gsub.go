// seehuhn.de/go/hangul - compose Hangul syllable glyphs from jamo outlines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fonttable

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/hangul/opentype/coverage"
	"seehuhn.de/go/hangul/opentype/gtab"
)

// ttxLookup is the payload of opaque GSUB lookups read from TTX.
type ttxLookup struct {
	lookup *node
}

// readGSUB converts the TTX form of a GSUB table.  Lookups of types which
// are not modelled by gtab are kept as [gtab.Opaque] subtables.
func readGSUB(gsub *node, gids map[string]glyph.ID) (*gtab.Info, error) {
	info := &gtab.Info{
		ScriptList: gtab.ScriptListInfo{},
	}

	gid := func(name string) (glyph.ID, error) {
		id, ok := gids[name]
		if !ok {
			return 0, &FormatError{Element: "GSUB", Reason: "unknown glyph " + name}
		}
		return id, nil
	}
	glyphs := func(names []string) ([]glyph.ID, error) {
		res := make([]glyph.ID, len(names))
		for i, name := range names {
			id, err := gid(name)
			if err != nil {
				return nil, err
			}
			res[i] = id
		}
		return res, nil
	}
	coverageSet := func(cov *node) (coverage.Set, error) {
		var names []string
		for _, g := range cov.children("Glyph") {
			name, _ := g.attr("value")
			names = append(names, name)
		}
		ids, err := glyphs(names)
		if err != nil {
			return nil, err
		}
		return coverage.NewSet(ids...), nil
	}

	for _, rec := range gsub.child("ScriptList").children("ScriptRecord") {
		scriptTag, _ := rec.value("ScriptTag")
		script := rec.child("Script")
		langSys := map[string]*node{}
		if dflt := script.child("DefaultLangSys"); dflt != nil {
			langSys[""] = dflt
		}
		for _, lr := range script.children("LangSysRecord") {
			langTag, _ := lr.value("LangSysTag")
			langSys[langTag] = lr.child("LangSys")
		}
		for langTag, ls := range langSys {
			tag, err := gtab.ParseOpenTypeTags(scriptTag, langTag)
			if err != nil {
				return nil, &FormatError{Element: "ScriptRecord", Reason: err.Error()}
			}
			ff := &gtab.Features{Required: gtab.NoRequiredFeature}
			if req, ok, err := ls.intValue("ReqFeatureIndex"); err != nil {
				return nil, err
			} else if ok {
				ff.Required = gtab.FeatureIndex(req)
			}
			for _, fi := range ls.children("FeatureIndex") {
				v, _ := fi.attr("value")
				idx, err := parseInt(v)
				if err != nil {
					return nil, &FormatError{Element: "FeatureIndex", Reason: err.Error()}
				}
				ff.Optional = append(ff.Optional, gtab.FeatureIndex(idx))
			}
			info.ScriptList[tag] = ff
		}
	}

	for _, rec := range gsub.child("FeatureList").children("FeatureRecord") {
		tag, _ := rec.value("FeatureTag")
		feature := &gtab.Feature{Tag: tag}
		for _, li := range rec.child("Feature").children("LookupListIndex") {
			v, _ := li.attr("value")
			idx, err := parseInt(v)
			if err != nil {
				return nil, &FormatError{Element: "LookupListIndex", Reason: err.Error()}
			}
			feature.Lookups = append(feature.Lookups, gtab.LookupIndex(idx))
		}
		info.FeatureList = append(info.FeatureList, feature)
	}

	for _, lookup := range gsub.child("LookupList").children("Lookup") {
		lookupType, _, err := lookup.intValue("LookupType")
		if err != nil {
			return nil, err
		}
		lookupFlag, _, err := lookup.intValue("LookupFlag")
		if err != nil {
			return nil, err
		}
		meta := &gtab.LookupMetaInfo{
			LookupType: uint16(lookupType),
			LookupFlag: gtab.LookupFlags(lookupFlag),
		}
		if mfs, ok, err := lookup.intValue("MarkFilteringSet"); err != nil {
			return nil, err
		} else if ok {
			meta.MarkFilteringSet = uint16(mfs)
		}

		var subtables gtab.Subtables
		opaque := false
		for _, st := range lookup.Nodes {
			if st.name() == "ExtensionSubst" {
				extType, _, err := st.intValue("ExtensionLookupType")
				if err != nil {
					return nil, err
				}
				meta.LookupType = uint16(extType)
				for _, c := range st.Nodes {
					if c.name() != "ExtensionLookupType" {
						st = c
						break
					}
				}
			}

			var subtable gtab.Subtable
			switch st.name() {
			case "SingleSubst":
				subst := make(map[glyph.ID]glyph.ID)
				for _, s := range st.children("Substitution") {
					in, _ := s.attr("in")
					out, _ := s.attr("out")
					inID, err := gid(in)
					if err != nil {
						return nil, err
					}
					outID, err := gid(out)
					if err != nil {
						return nil, err
					}
					subst[inID] = outID
				}
				subtable = gtab.NewGsub1_2(subst)

			case "MultipleSubst":
				var in []glyph.ID
				var repl [][]glyph.ID
				for _, s := range st.children("Substitution") {
					inName, _ := s.attr("in")
					outNames, _ := s.attr("out")
					inID, err := gid(inName)
					if err != nil {
						return nil, err
					}
					out, err := glyphs(strings.Split(outNames, ","))
					if err != nil {
						return nil, err
					}
					in = append(in, inID)
					repl = append(repl, out)
				}
				subtable = newGsub2_1(in, repl)

			case "LigatureSubst":
				var first []glyph.ID
				var sets [][]gtab.Ligature
				for _, set := range st.children("LigatureSet") {
					firstName, _ := set.attr("glyph")
					firstID, err := gid(firstName)
					if err != nil {
						return nil, err
					}
					var ligs []gtab.Ligature
					for _, lig := range set.children("Ligature") {
						components, _ := lig.attr("components")
						out, _ := lig.attr("glyph")
						var in []glyph.ID
						if components != "" {
							in, err = glyphs(strings.Split(components, ","))
							if err != nil {
								return nil, err
							}
						}
						outID, err := gid(out)
						if err != nil {
							return nil, err
						}
						ligs = append(ligs, gtab.Ligature{In: in, Out: outID})
					}
					first = append(first, firstID)
					sets = append(sets, ligs)
				}
				subtable = newGsub4_1(first, sets)

			case "ChainContextSubst":
				if format, _ := st.attr("Format"); format != "3" {
					opaque = true
					break
				}
				chain := &gtab.ChainedSeqContext3{}
				for _, c := range st.Nodes {
					var list *[]coverage.Set
					switch c.name() {
					case "BacktrackCoverage":
						list = &chain.Backtrack
					case "InputCoverage":
						list = &chain.Input
					case "LookAheadCoverage":
						list = &chain.Lookahead
					case "SubstLookupRecord":
						seqIdx, _, err := c.intValue("SequenceIndex")
						if err != nil {
							return nil, err
						}
						lookupIdx, _, err := c.intValue("LookupListIndex")
						if err != nil {
							return nil, err
						}
						chain.Actions = append(chain.Actions, gtab.SeqLookup{
							SequenceIndex:   uint16(seqIdx),
							LookupListIndex: gtab.LookupIndex(lookupIdx),
						})
						continue
					default:
						continue
					}
					set, err := coverageSet(c)
					if err != nil {
						return nil, err
					}
					*list = append(*list, set)
				}
				subtable = chain

			case "LookupType", "LookupFlag", "MarkFilteringSet":
				continue

			default:
				opaque = true
			}
			if opaque {
				break
			}
			subtables = append(subtables, subtable)
		}

		if opaque {
			meta.LookupType = uint16(lookupType)
			subtables = gtab.Subtables{&gtab.Opaque{Data: &ttxLookup{lookup: lookup}}}
		}
		info.LookupList = append(info.LookupList, &gtab.LookupTable{
			Meta:      meta,
			Subtables: subtables,
		})
	}

	return info, nil
}

func newGsub2_1(in []glyph.ID, repl [][]glyph.ID) *gtab.Gsub2_1 {
	cov := coverage.New(in...)
	res := &gtab.Gsub2_1{Cov: cov, Repl: make([][]glyph.ID, len(cov))}
	for i, gid := range in {
		res.Repl[cov[gid]] = repl[i]
	}
	return res
}

func newGsub4_1(first []glyph.ID, sets [][]gtab.Ligature) *gtab.Gsub4_1 {
	cov := coverage.New(first...)
	res := &gtab.Gsub4_1{Cov: cov, Repl: make([][]gtab.Ligature, len(cov))}
	for i, gid := range first {
		idx := cov[gid]
		res.Repl[idx] = append(res.Repl[idx], sets[i]...)
	}
	return res
}

// writeGSUB converts a GSUB table into TTX form.
func writeGSUB(info *gtab.Info, glyphOrder []string) (*node, error) {
	name := func(gid glyph.ID) (string, error) {
		if int(gid) >= len(glyphOrder) {
			return "", fmt.Errorf("fonttable: GSUB refers to invalid glyph %d", gid)
		}
		return glyphOrder[gid], nil
	}
	names := func(gids []glyph.ID) (string, error) {
		parts := make([]string, len(gids))
		for i, gid := range gids {
			n, err := name(gid)
			if err != nil {
				return "", err
			}
			parts[i] = n
		}
		return strings.Join(parts, ","), nil
	}
	coverageNode := func(tag string, index int, set coverage.Set) (*node, error) {
		n := newNode(tag, "index", strconv.Itoa(index))
		for _, gid := range set.Glyphs() {
			gName, err := name(gid)
			if err != nil {
				return nil, err
			}
			n.add(valueNode("Glyph", gName))
		}
		return n, nil
	}

	gsub := newNode("GSUB").add(valueNode("Version", "0x00010000"))

	type scriptEntry struct {
		script string
		dflt   *gtab.Features
		langs  map[string]*gtab.Features
	}
	scripts := map[string]*scriptEntry{}
	var scriptOrder []string
	for tag, ff := range info.ScriptList {
		script, lang, err := gtab.OpenTypeTags(tag)
		if err != nil {
			return nil, fmt.Errorf("fonttable: %w", err)
		}
		entry := scripts[script]
		if entry == nil {
			entry = &scriptEntry{script: script, langs: map[string]*gtab.Features{}}
			scripts[script] = entry
			scriptOrder = append(scriptOrder, script)
		}
		if lang == "" {
			entry.dflt = ff
		} else {
			entry.langs[lang] = ff
		}
	}
	slices.Sort(scriptOrder)

	langSysNode := func(tag string, ff *gtab.Features) *node {
		n := newNode(tag).add(valueNode("ReqFeatureIndex", strconv.Itoa(int(ff.Required))))
		for i, idx := range ff.Optional {
			n.add(newNode("FeatureIndex", "index", strconv.Itoa(i), "value", strconv.Itoa(int(idx))))
		}
		return n
	}

	scriptList := newNode("ScriptList")
	for i, script := range scriptOrder {
		entry := scripts[script]
		s := newNode("Script")
		if entry.dflt != nil {
			s.add(langSysNode("DefaultLangSys", entry.dflt))
		}
		var langs []string
		for lang := range entry.langs {
			langs = append(langs, lang)
		}
		slices.Sort(langs)
		for j, lang := range langs {
			s.add(newNode("LangSysRecord", "index", strconv.Itoa(j)).add(
				valueNode("LangSysTag", lang),
				langSysNode("LangSys", entry.langs[lang])))
		}
		scriptList.add(newNode("ScriptRecord", "index", strconv.Itoa(i)).add(
			valueNode("ScriptTag", script), s))
	}
	gsub.add(scriptList)

	featureList := newNode("FeatureList")
	for i, f := range info.FeatureList {
		feature := newNode("Feature")
		for j, idx := range f.Lookups {
			feature.add(newNode("LookupListIndex", "index", strconv.Itoa(j), "value", strconv.Itoa(int(idx))))
		}
		featureList.add(newNode("FeatureRecord", "index", strconv.Itoa(i)).add(
			valueNode("FeatureTag", f.Tag), feature))
	}
	gsub.add(featureList)

	lookupList := newNode("LookupList")
	for i, l := range info.LookupList {
		if len(l.Subtables) == 1 {
			if op, ok := l.Subtables[0].(*gtab.Opaque); ok {
				raw, ok := op.Data.(*ttxLookup)
				if !ok {
					return nil, fmt.Errorf("fonttable: lookup %d cannot be written", i)
				}
				n := raw.lookup.shallow()
				n.Attrs = nil
				n.setAttr("index", strconv.Itoa(i))
				lookupList.add(n)
				continue
			}
		}

		lookup := newNode("Lookup", "index", strconv.Itoa(i)).add(
			valueNode("LookupType", strconv.Itoa(int(l.Meta.LookupType))),
			valueNode("LookupFlag", strconv.Itoa(int(l.Meta.LookupFlag))))
		for j, st := range l.Subtables {
			idx := strconv.Itoa(j)
			var n *node
			switch st := st.(type) {
			case *gtab.Gsub1_1:
				n = newNode("SingleSubst", "index", idx)
				for _, in := range st.Cov.Glyphs() {
					inName, err := name(in)
					if err != nil {
						return nil, err
					}
					outName, err := name(in + st.Delta)
					if err != nil {
						return nil, err
					}
					n.add(newNode("Substitution", "in", inName, "out", outName))
				}
			case *gtab.Gsub1_2:
				n = newNode("SingleSubst", "index", idx)
				for _, in := range st.Cov.Glyphs() {
					inName, err := name(in)
					if err != nil {
						return nil, err
					}
					outName, err := name(st.SubstituteGlyphIDs[st.Cov[in]])
					if err != nil {
						return nil, err
					}
					n.add(newNode("Substitution", "in", inName, "out", outName))
				}
			case *gtab.Gsub2_1:
				n = newNode("MultipleSubst", "index", idx)
				for _, in := range st.Cov.Glyphs() {
					inName, err := name(in)
					if err != nil {
						return nil, err
					}
					out, err := names(st.Repl[st.Cov[in]])
					if err != nil {
						return nil, err
					}
					n.add(newNode("Substitution", "in", inName, "out", out))
				}
			case *gtab.Gsub4_1:
				n = newNode("LigatureSubst", "index", idx)
				for _, first := range st.Cov.Glyphs() {
					firstName, err := name(first)
					if err != nil {
						return nil, err
					}
					set := newNode("LigatureSet", "glyph", firstName)
					for _, lig := range st.Repl[st.Cov[first]] {
						components, err := names(lig.In)
						if err != nil {
							return nil, err
						}
						out, err := name(lig.Out)
						if err != nil {
							return nil, err
						}
						set.add(newNode("Ligature", "components", components, "glyph", out))
					}
					n.add(set)
				}
			case *gtab.ChainedSeqContext3:
				n = newNode("ChainContextSubst", "index", idx, "Format", "3")
				for _, group := range []struct {
					tag  string
					sets []coverage.Set
				}{
					{"BacktrackCoverage", st.Backtrack},
					{"InputCoverage", st.Input},
					{"LookAheadCoverage", st.Lookahead},
				} {
					for k, set := range group.sets {
						c, err := coverageNode(group.tag, k, set)
						if err != nil {
							return nil, err
						}
						n.add(c)
					}
				}
				for k, action := range st.Actions {
					n.add(newNode("SubstLookupRecord", "index", strconv.Itoa(k)).add(
						valueNode("SequenceIndex", strconv.Itoa(int(action.SequenceIndex))),
						valueNode("LookupListIndex", strconv.Itoa(int(action.LookupListIndex)))))
				}
			default:
				return nil, fmt.Errorf("fonttable: lookup %d: unsupported subtable %T", i, st)
			}
			lookup.add(n)
		}
		if l.Meta.LookupFlag&gtab.LookupUseMarkFilteringSet != 0 {
			lookup.add(valueNode("MarkFilteringSet", strconv.Itoa(int(l.Meta.MarkFilteringSet))))
		}
		lookupList.add(lookup)
	}
	gsub.add(lookupList)

	return gsub, nil
}
