// Package pretty renders decoded tag trees as indented text for human
// inspection, one line per scalar and a braced block per container.
package pretty

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/arloliu/mcworld/format"
	"github.com/arloliu/mcworld/nbt"
)

const indentStep = 4

// Fprint writes an unnamed rendering of tag to w, the form used for a
// tree whose name is not of interest.
func Fprint(w io.Writer, tag nbt.Tag) error {
	p := printer{w: w}
	p.print(0, "", false, tag)

	return p.err
}

// FprintNamed writes a rendering of tag to w with its name shown after
// the type label, the form used for compound entries and named roots.
func FprintNamed(w io.Writer, name string, tag nbt.Tag) error {
	p := printer{w: w}
	p.print(0, name, true, tag)

	return p.err
}

// printer walks the tree carrying a sticky write error, so the recursion
// never has to thread error returns through every level.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) print(indent int, name string, named bool, tag nbt.Tag) {
	pad := strings.Repeat(" ", indent)
	label := heading(tag.Type(), name, named)

	switch tag.Type() {
	case format.TagCompound:
		entries, _ := tag.AsCompound()
		p.printf("%s%s : %d entries\n%s{\n", pad, label, len(entries), pad)

		// Map order is arbitrary; sort names so output is reproducible.
		names := make([]string, 0, len(entries))
		for n := range entries {
			names = append(names, n)
		}
		slices.Sort(names)

		for _, n := range names {
			p.print(indent+indentStep, n, true, entries[n])
		}
		p.printf("%s}\n", pad)
	case format.TagList:
		elems, _ := tag.AsList()
		p.printf("%s%s : %d entries of type %s\n%s{\n", pad, label, len(elems), tag.ElementType(), pad)

		for _, elem := range elems {
			p.print(indent+indentStep, "", false, elem)
		}
		p.printf("%s}\n", pad)
	case format.TagByteArray, format.TagIntArray, format.TagLongArray:
		p.printf("%s%s : Length of %d\n", pad, label, tag.Len())
	case format.TagString:
		s, _ := tag.AsString()
		p.printf("%s%s : %s\n", pad, label, s)
	case format.TagByte:
		v, _ := tag.AsInt8()
		p.printf("%s%s : %d\n", pad, label, v)
	case format.TagShort:
		v, _ := tag.AsInt16()
		p.printf("%s%s : %d\n", pad, label, v)
	case format.TagInt:
		v, _ := tag.AsInt32()
		p.printf("%s%s : %d\n", pad, label, v)
	case format.TagLong:
		v, _ := tag.AsInt64()
		p.printf("%s%s : %d\n", pad, label, v)
	case format.TagFloat:
		v, _ := tag.AsFloat32()
		p.printf("%s%s : %v\n", pad, label, v)
	case format.TagDouble:
		v, _ := tag.AsFloat64()
		p.printf("%s%s : %v\n", pad, label, v)
	default:
		p.printf("%s%s\n", pad, label)
	}
}

func heading(typ format.TagType, name string, named bool) string {
	if !named {
		return typ.String()
	}

	return fmt.Sprintf("%s(%q)", typ, name)
}
