package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/esdata/model"
)

// LineEncoder writes one tab-separated line per record: the kind, the name
// and a few key=value summary fields. Absent values are written as "-".
type LineEncoder struct {
	w       io.Writer
	objects []model.Object
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(objects []model.Object) error {
	e.objects = objects
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, obj := range e.objects {
		fields := []string{obj.Kind().String(), quoteName(model.NameOf(obj))}
		fields = append(fields, summary(obj)...)
		sb.WriteString(strings.Join(fields, "\t"))
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

func summary(obj model.Object) []string {
	switch o := obj.(type) {
	case *model.Galaxy:
		return []string{
			"pos=" + posStr(o.Pos),
			"sprite=" + optStr(o.Sprite),
		}
	case *model.System:
		return []string{
			"pos=" + posStr(o.Pos),
			"government=" + o.Government,
			"links=" + listStr(o.Links),
			"objects=" + strconv.Itoa(countObjects(o.Objects)),
		}
	case *model.Planet:
		return []string{
			"attributes=" + listStr(o.Attributes),
			"government=" + optStr(o.Government),
			"description=" + strconv.Itoa(len(o.Description)),
		}
	case *model.Start:
		return []string{
			"date=" + o.Date.String(),
			"planet=" + o.Planet,
			"credits=" + strconv.FormatUint(o.Account.Credits, 10),
		}
	case *model.Ship:
		return []string{
			"category=" + o.Attributes.Category,
			"cost=" + strconv.FormatUint(uint64(o.Attributes.Cost), 10),
			"sprite=" + o.Sprite.SpriteName(),
			"outfits=" + strconv.Itoa(len(o.Outfits)),
		}
	}
	return nil
}

// countObjects counts every object of the trees, nested ones included.
func countObjects(objects []model.SystemObject) int {
	n := len(objects)
	for _, o := range objects {
		n += countObjects(o.Objects)
	}
	return n
}

func quoteName(name string) string {
	if name == "" || strings.ContainsAny(name, " \t") {
		return strconv.Quote(name)
	}
	return name
}

func posStr(p model.Position) string {
	return fmt.Sprintf("%s,%s",
		strconv.FormatFloat(p.X, 'g', -1, 64),
		strconv.FormatFloat(p.Y, 'g', -1, 64),
	)
}

func optStr(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}
