package localedb

import (
	"fmt"
	"strings"
	"time"
)

// Strftime formats t according to a strftime(3) format, using the names
// and formats of the active locale.
func Strftime(format string, t time.Time) string {
	var b strings.Builder
	Current().strftime(&b, format, t, 0)
	return b.String()
}

// maxNesting bounds %c, %x, %X and %r expansion in case a definition refers
// back to itself.
const maxNesting = 4

func (def *Definition) strftime(b *strings.Builder, format string, t time.Time, depth int) {
	nested := func(f string) {
		if depth < maxNesting {
			def.strftime(b, f, t, depth+1)
		}
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		switch format[i] {
		case 'a':
			b.WriteString(def.Time.Abday[t.Weekday()])
		case 'A':
			b.WriteString(def.Time.Day[t.Weekday()])
		case 'b', 'h':
			b.WriteString(def.Time.Abmon[t.Month()-1])
		case 'B':
			b.WriteString(def.Time.Mon[t.Month()-1])
		case 'c':
			nested(def.Time.DTFmt)
		case 'C':
			fmt.Fprintf(b, "%02d", t.Year()/100)
		case 'd':
			fmt.Fprintf(b, "%02d", t.Day())
		case 'D':
			nested("%m/%d/%y")
		case 'e':
			fmt.Fprintf(b, "%2d", t.Day())
		case 'F':
			nested("%Y-%m-%d")
		case 'H':
			fmt.Fprintf(b, "%02d", t.Hour())
		case 'I':
			fmt.Fprintf(b, "%02d", hour12(t))
		case 'j':
			fmt.Fprintf(b, "%03d", t.YearDay())
		case 'k':
			fmt.Fprintf(b, "%2d", t.Hour())
		case 'l':
			fmt.Fprintf(b, "%2d", hour12(t))
		case 'm':
			fmt.Fprintf(b, "%02d", int(t.Month()))
		case 'M':
			fmt.Fprintf(b, "%02d", t.Minute())
		case 'n':
			b.WriteByte('\n')
		case 'p':
			b.WriteString(def.ampm(t))
		case 'P':
			b.WriteString(strings.ToLower(def.ampm(t)))
		case 'r':
			if def.Time.TFmtAMPM != "" {
				nested(def.Time.TFmtAMPM)
			} else {
				nested("%I:%M:%S %p")
			}
		case 'R':
			nested("%H:%M")
		case 's':
			fmt.Fprintf(b, "%d", t.Unix())
		case 'S':
			fmt.Fprintf(b, "%02d", t.Second())
		case 't':
			b.WriteByte('\t')
		case 'T':
			nested("%H:%M:%S")
		case 'u':
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			fmt.Fprintf(b, "%d", wd)
		case 'w':
			fmt.Fprintf(b, "%d", int(t.Weekday()))
		case 'x':
			nested(def.Time.DFmt)
		case 'X':
			nested(def.Time.TFmt)
		case 'y':
			fmt.Fprintf(b, "%02d", t.Year()%100)
		case 'Y':
			fmt.Fprintf(b, "%d", t.Year())
		case 'z':
			b.WriteString(t.Format("-0700"))
		case 'Z':
			b.WriteString(t.Format("MST"))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}

func (def *Definition) ampm(t time.Time) string {
	if t.Hour() < 12 {
		return def.Time.AMPM[0]
	}
	return def.Time.AMPM[1]
}
