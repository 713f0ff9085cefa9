// Package extract pulls the applicant ("Bauherrschaft") out of a
// publication's detail XML. The canton schemas differ, so extraction tries
// canton-specific paths first and falls back to a tag-name heuristic.
package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/bauradar/baugesuche-crawler/internal/permit"
)

// Reason tags why extraction failed for one publication.
type Reason string

// Failure reasons. A tagged failure skips the publication; it never aborts
// the run.
const (
	ReasonMalformedXML Reason = "malformed-xml"
	ReasonNoApplicant  Reason = "no-applicant"
)

// Error is a per-publication extraction failure.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	return "extract applicant: " + string(e.Reason)
}

// Result carries the extracted applicant fields.
type Result struct {
	Name    string
	Address string
}

// Applicant extracts the applicant name and address from detail XML. ZH
// publications carry a structured buildingContractor block; ZG uses several
// known containers. Either way the tag-name heuristic is the last resort.
func Applicant(detailXML string, canton permit.Canton) (Result, error) {
	doc, err := xmlquery.Parse(strings.NewReader(detailXML))
	if err != nil {
		return Result{}, &Error{Reason: ReasonMalformedXML}
	}

	var res Result
	switch canton {
	case permit.CantonZG:
		res = zugApplicant(doc)
	default:
		res = zurichApplicant(doc)
	}
	if res.Name == "" {
		res = heuristicApplicant(doc)
	}
	if res.Name == "" {
		return Result{}, &Error{Reason: ReasonNoApplicant}
	}
	return res, nil
}

// ClassifierText assembles the haystack the MFH matcher scans: the list
// title, the project description, and the full content block. Malformed XML
// degrades to the title alone.
func ClassifierText(detailXML, title string) string {
	parts := []string{title}
	if doc, err := xmlquery.Parse(strings.NewReader(detailXML)); err == nil {
		if pd := xmlquery.FindOne(doc, "//content/projectDescription"); pd != nil {
			parts = append(parts, pd.InnerText())
		}
		if content := xmlquery.FindOne(doc, "//content"); content != nil {
			parts = append(parts, content.InnerText())
		}
	}
	return collapse(strings.Join(parts, " "))
}

// zurichApplicant reads the BP-ZH01 layout: content/buildingContractor with
// structured person and company entries.
func zurichApplicant(doc *xmlquery.Node) Result {
	bc := xmlquery.FindOne(doc, "//content/buildingContractor")
	if bc == nil {
		return Result{}
	}
	return parties(bc)
}

// Containers seen across the BP-ZG schemas, in preference order.
var zugContainers = []string{
	".//buildingContractor",
	".//bauherrschaft",
	".//gesuchsteller",
	".//applicant",
}

// zugApplicant is best-effort for the ZG schemas: known containers first,
// then generic party structures anywhere under content.
func zugApplicant(doc *xmlquery.Node) Result {
	content := xmlquery.FindOne(doc, "//content")
	if content == nil {
		return Result{}
	}

	var res Result
	for _, path := range zugContainers {
		for _, node := range xmlquery.Find(content, path) {
			res = merge(res, parties(node))
		}
	}
	if res.Name != "" {
		return res
	}

	for _, path := range []string{".//party", ".//person", ".//company"} {
		for _, node := range xmlquery.Find(content, path) {
			if txt := collapse(node.InnerText()); txt != "" {
				res = merge(res, Result{Name: txt})
			}
		}
	}
	return res
}

// parties extracts structured person and company entries below node. When
// nothing structured is present the node's whole text serves as the name.
func parties(node *xmlquery.Node) Result {
	var names []string
	var address string

	for _, person := range xmlquery.Find(node, ".//person") {
		prename := childText(person, ".//prename")
		name := childText(person, ".//name")
		full := strings.TrimSpace(prename + " " + name)
		if full == "" {
			continue
		}
		names = append(names, full)
		if address == "" {
			address = swissAddress(person)
		}
	}

	for _, company := range xmlquery.Find(node, ".//company") {
		cname := childText(company, ".//name")
		if cname == "" {
			continue
		}
		names = append(names, cname)
		if address == "" {
			// customAddress keeps its line structure; fold it here rather
			// than in childText, which collapses newlines.
			if ca := xmlquery.FindOne(company, ".//customAddress"); ca != nil {
				address = foldLines(ca.InnerText())
			}
		}
	}

	if len(names) == 0 {
		return Result{Name: collapse(node.InnerText())}
	}
	return Result{Name: joinUnique(names), Address: address}
}

// swissAddress renders an addressSwitzerland block as
// "street houseNumber, zip town".
func swissAddress(person *xmlquery.Node) string {
	addr := xmlquery.FindOne(person, ".//addressSwitzerland")
	if addr == nil {
		return ""
	}
	street := strings.TrimSpace(childText(addr, ".//street") + " " + childText(addr, ".//houseNumber"))
	town := strings.TrimSpace(childText(addr, ".//swissZipCode") + " " + childText(addr, ".//town"))
	switch {
	case street == "":
		return town
	case town == "":
		return street
	default:
		return street + ", " + town
	}
}

// heuristicApplicant collects text from any element whose local name
// mentions the applicant, covering layouts the precise paths miss.
func heuristicApplicant(doc *xmlquery.Node) Result {
	var names []string
	for _, node := range xmlquery.Find(doc, "//*") {
		tag := strings.ToLower(node.Data)
		if !strings.Contains(tag, "bauherr") && !strings.Contains(tag, "gesuchstell") {
			continue
		}
		if txt := collapse(node.InnerText()); txt != "" {
			names = append(names, txt)
		}
	}
	return Result{Name: joinUnique(names)}
}

func merge(a, b Result) Result {
	if b.Name != "" {
		if a.Name == "" {
			a.Name = b.Name
		} else if a.Name != b.Name {
			a.Name = joinUnique([]string{a.Name, b.Name})
		}
	}
	if a.Address == "" {
		a.Address = b.Address
	}
	return a
}

func childText(node *xmlquery.Node, path string) string {
	child := xmlquery.FindOne(node, path)
	if child == nil {
		return ""
	}
	return collapse(child.InnerText())
}

// joinUnique joins values with " | ", dropping duplicates but keeping order.
func joinUnique(values []string) string {
	seen := make(map[string]struct{}, len(values))
	uniq := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		uniq = append(uniq, v)
	}
	return strings.Join(uniq, " | ")
}

// foldLines turns a multi-line block into "line, line".
func foldLines(s string) string {
	lines := strings.Split(s, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = collapse(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, ", ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
