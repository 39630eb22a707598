package gauge

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindCustom Kind = iota
	KindBackground
	KindGlass
	KindLabel
	KindArc
	KindColorBand
	KindDegrees
	KindValues
	KindNeedle
	KindAttitudeMeter
)

var kindNames = map[Kind]string{
	KindCustom:        "custom",
	KindBackground:    "background",
	KindGlass:         "glass",
	KindLabel:         "label",
	KindArc:           "arc",
	KindColorBand:     "colorband",
	KindDegrees:       "degrees",
	KindValues:        "values",
	KindNeedle:        "needle",
	KindAttitudeMeter: "attitude",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindCustom, fmt.Errorf("unknown item kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
