package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var (
	errSalaryType = errors.New("salary must be a number or a string")
	errSkillsType = errors.New("skills must be a string or a list of strings")
)

// Salary keeps whatever JSON type the caller sent (number or text) and stores it
// in the document with the same BSON type.
type Salary struct {
	text     string
	number   float64
	isNumber bool
}

func SalaryText(s string) Salary {
	return Salary{text: s}
}

func SalaryNumber(n float64) Salary {
	return Salary{number: n, isNumber: true}
}

// Value returns the underlying string or float64. Zero values count as missing.
func (s Salary) Value() any {
	if s.isNumber {
		return s.number
	}
	return s.text
}

func (s Salary) MarshalJSON() ([]byte, error) {
	if s.isNumber {
		return json.Marshal(s.number)
	}
	return json.Marshal(s.text)
}

func (s *Salary) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*s = Salary{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &s.text)
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return errSalaryType
	}
	s.number, s.isNumber = n, true
	return nil
}

func (s Salary) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s.isNumber {
		return bson.MarshalValue(s.number)
	}
	return bson.MarshalValue(s.text)
}

func (s *Salary) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	*s = Salary{}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.String:
		s.text = rv.StringValue()
	case bsontype.Double:
		s.number, s.isNumber = rv.Double(), true
	case bsontype.Int32:
		s.number, s.isNumber = float64(rv.Int32()), true
	case bsontype.Int64:
		s.number, s.isNumber = float64(rv.Int64()), true
	default:
		return fmt.Errorf("salary: unsupported bson type %s", t)
	}
	return nil
}

// Skills keeps the shape the caller sent: one delimited string or a list of strings.
type Skills struct {
	text   string
	list   []string
	isList bool
}

func SkillsText(s string) Skills {
	return Skills{text: s}
}

func SkillsList(items ...string) Skills {
	return Skills{list: append([]string{}, items...), isList: true}
}

// Value returns the text or the list; an empty list yields nil so that it counts
// as missing.
func (s Skills) Value() any {
	if s.isList {
		if len(s.list) == 0 {
			return nil
		}
		return s.list
	}
	return s.text
}

func (s Skills) MarshalJSON() ([]byte, error) {
	if s.isList {
		if s.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.list)
	}
	return json.Marshal(s.text)
}

func (s *Skills) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*s = Skills{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &s.text)
	case '[':
		if err := json.Unmarshal(b, &s.list); err != nil {
			return errSkillsType
		}
		s.isList = true
		return nil
	default:
		return errSkillsType
	}
}

func (s Skills) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s.isList {
		list := s.list
		if list == nil {
			list = []string{}
		}
		return bson.MarshalValue(list)
	}
	return bson.MarshalValue(s.text)
}

func (s *Skills) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	*s = Skills{}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.String:
		s.text = rv.StringValue()
	case bsontype.Array:
		if err := rv.Unmarshal(&s.list); err != nil {
			return err
		}
		s.isList = true
	default:
		return fmt.Errorf("skills: unsupported bson type %s", t)
	}
	return nil
}

// Items returns the stored values; delimited text is returned as one item.
func (s Skills) Items() []string {
	if s.isList {
		return append([]string{}, s.list...)
	}
	if s.text == "" {
		return nil
	}
	return []string{s.text}
}
