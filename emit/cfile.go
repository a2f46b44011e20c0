package emit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pulsedrive/calres/axis"
	"github.com/pulsedrive/calres/caltab"
)

// WriteHeader renders the extern declarations for every binding.
func WriteHeader(w io.Writer, base string, tab *caltab.Table, info Info) error {
	if err := writeGenBlock(w, base+".h", info); err != nil {
		return err
	}
	guard := includeGuard(base)
	if _, err := fmt.Fprintf(w, "#ifndef %s\n#define %s\n\n#include \"platform_types.h\"\n\n", guard, guard); err != nil {
		return err
	}
	for _, name := range tab.Names() {
		b, _ := tab.Get(name)
		if _, err := fmt.Fprintf(w, "extern const %s;\n", declarator(b)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n#endif /* %s */\n", guard)
	return err
}

// WriteSource renders the const definitions, grouped by resolution origin.
func WriteSource(w io.Writer, base string, tab *caltab.Table, info Info) error {
	if err := writeGenBlock(w, base+".c", info); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "#include \"%s.h\"\n", base); err != nil {
		return err
	}

	origin := ""
	for _, name := range tab.Names() {
		b, _ := tab.Get(name)
		if b.Origin != origin {
			origin = b.Origin
			banner := origin
			if banner == "" {
				banner = "common"
			}
			if _, err := fmt.Fprintf(w, "\n/*%s*/\n/* %s */\n/*%s*/\n",
				strings.Repeat("=", 58), banner, strings.Repeat("=", 58)); err != nil {
				return err
			}
		}
		if err := writeDefinition(w, b); err != nil {
			return err
		}
	}
	return nil
}

func writeDefinition(w io.Writer, b caltab.Binding) error {
	if b.PerTarget {
		if _, err := fmt.Fprintf(w, "const %s =\n{\n", declarator(b)); err != nil {
			return err
		}
		for _, t := range axis.Targets() {
			sep := ","
			if int(t) == len(b.Values)-1 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "    %s%s  /* %s */\n", cValue(b.At(t)), sep, t); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, "};\n")
		return err
	}

	trail := ""
	if b.Unit != "" {
		trail = fmt.Sprintf("  /* %s */", b.Unit)
	}
	_, err := fmt.Fprintf(w, "const %s = %s;%s\n", declarator(b), cValue(b.Scalar()), trail)
	return err
}

func writeGenBlock(w io.Writer, file string, info Info) error {
	_, err := fmt.Fprintf(w, `/*
 * %s
 *
 * Generated by %s %s. Do not edit.
 *
 * Run:     %s
 * Date:    %s
 * Source:  %s
 * Context: %s
 */
`, file, info.Tool, info.Version, info.RunID,
		info.Date.Format("2006-01-02 15:04:05 UTC"), info.Source, info.Context)
	return err
}

func declarator(b caltab.Binding) string {
	if b.PerTarget {
		return fmt.Sprintf("%s %s[%d]", b.Kind.CType(), b.Name, axis.TargetCount)
	}
	return fmt.Sprintf("%s %s", b.Kind.CType(), b.Name)
}

// cValue renders one value as a C literal: unsigned literals carry the U
// suffix, single-precision floats the f suffix, flags render TRUE/FALSE.
func cValue(v caltab.Value) string {
	switch v.Kind {
	case caltab.U8, caltab.U16, caltab.U32:
		return strconv.FormatUint(v.U, 10) + "U"
	case caltab.I16, caltab.I32:
		return strconv.FormatInt(v.I, 10)
	case caltab.F32:
		s := strconv.FormatFloat(v.F, 'g', -1, 32)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s + "f"
	case caltab.Bool:
		if v.B {
			return "TRUE"
		}
		return "FALSE"
	}
	return "/* invalid */"
}

func includeGuard(base string) string {
	g := strings.ToUpper(base)
	g = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, g)
	return g + "_H"
}
