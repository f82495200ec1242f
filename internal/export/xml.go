package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/ginjaninja78/quota-data-transformer/internal/cleaners"
	"github.com/ginjaninja78/quota-data-transformer/internal/labels"
	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// =============================================================================
// XML DOCUMENT
// =============================================================================
//
// STRUCTURE:
//   <quotaRequests>
//     <category name="Quota Increase" n="1">
//       <request n="1">
//         <subscriptionId>...</subscriptionId>
//         ...
//       </request>
//     </category>
//   </quotaRequests>
//
// Requests are numbered globally across categories. Element names stay in
// English; values follow the locale.

const xmlIndent = "  "

var xmlTags = map[string]string{
	types.HeaderRDQuota:        "rdQuota",
	types.HeaderSubscriptionID: "subscriptionId",
	types.HeaderRequestType:    "requestType",
	types.HeaderVMType:         "vmType",
	types.HeaderRegion:         "region",
	types.HeaderZone:           "zone",
	types.HeaderCores:          "cores",
	types.HeaderStatus:         "status",
}

type xmlAttr struct {
	name, value string
}

type xmlElement struct {
	name     string
	attrs    []xmlAttr
	value    string
	children []xmlElement
}

func writeXML(w io.Writer, tables []Table, locale labels.Locale) error {
	root := xmlElement{name: "quotaRequests"}

	requestIndex := 1
	for i, t := range tables {
		category := xmlElement{
			name: "category",
			attrs: []xmlAttr{
				{"name", labels.Translate(t.Title, locale)},
				{"n", fmt.Sprint(i + 1)},
			},
		}
		for _, rec := range t.Records {
			category.children = append(category.children, buildRequestElement(rec, t.Headers, locale, requestIndex))
			requestIndex++
		}
		root.children = append(root.children, category)
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeElement(&buf, root, 0)

	_, err := w.Write(buf.Bytes())
	return err
}

func buildRequestElement(rec types.CanonicalRecord, headers []string, locale labels.Locale, n int) xmlElement {
	el := xmlElement{
		name:  "request",
		attrs: []xmlAttr{{"n", fmt.Sprint(n)}},
	}
	if rec.HasCode() {
		el.attrs = append(el.attrs, xmlAttr{"code", string(rec.RequestTypeCode)})
	}
	for _, h := range headers {
		tag, ok := xmlTags[h]
		if !ok {
			continue
		}
		el.children = append(el.children, xmlElement{
			name:  tag,
			value: labels.Translate(cleaners.CleanCell(rec.Field(h)), locale),
		})
	}
	return el
}

// writeElement writes an element and its children with indentation.
// Elements without value or children are self-closing.
func writeElement(buf *bytes.Buffer, el xmlElement, level int) {
	for i := 0; i < level; i++ {
		buf.WriteString(xmlIndent)
	}

	buf.WriteString("<" + el.name)
	for _, attr := range el.attrs {
		fmt.Fprintf(buf, ` %s="%s"`, attr.name, escapeXML(attr.value))
	}

	if len(el.children) == 0 && el.value == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">")

	if el.value != "" {
		buf.WriteString(escapeXML(el.value))
	} else {
		buf.WriteString("\n")
		for _, child := range el.children {
			writeElement(buf, child, level+1)
		}
		for i := 0; i < level; i++ {
			buf.WriteString(xmlIndent)
		}
	}

	buf.WriteString("</" + el.name + ">\n")
}

// escapeXML escapes markup characters and replaces characters XML 1.0 does
// not allow with U+FFFD.
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
