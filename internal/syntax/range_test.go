package syntax

import (
	"errors"
	"reflect"
	"testing"
)

func TestEncodeSingleLine(t *testing.T) {
	r := Range{Start: Position{Line: 3, Character: 4}, End: Position{Line: 3, Character: 10}}
	got, err := r.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := []int32{3, 4, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("Encode = %v, want %v", got, want)
	}
}

func TestEncodeMultiLine(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 2}, End: Position{Line: 4, Character: 0}}
	got, err := r.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := []int32{1, 2, 4, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("Encode = %v, want %v", got, want)
	}
}

func TestEncodeInverted(t *testing.T) {
	cases := []Range{
		{Start: Position{Line: 5, Character: 0}, End: Position{Line: 4, Character: 0}},
		{Start: Position{Line: 2, Character: 8}, End: Position{Line: 2, Character: 3}},
	}
	for _, r := range cases {
		if _, err := r.Encode(); !errors.Is(err, ErrMalformedRange) {
			t.Errorf("Encode(%v): got %v, want ErrMalformedRange", r, err)
		}
	}
}

func TestDecodeRange(t *testing.T) {
	r, err := DecodeRange([]int32{3, 4, 10})
	if err != nil {
		t.Fatalf("DecodeRange: %v", err)
	}
	if r.Start.Line != 3 || r.Start.Character != 4 || r.End.Line != 3 || r.End.Character != 10 {
		t.Errorf("DecodeRange = %+v", r)
	}

	r, err = DecodeRange([]int32{1, 2, 4, 0})
	if err != nil {
		t.Fatalf("DecodeRange: %v", err)
	}
	if r.Start.Line != 1 || r.End.Line != 4 {
		t.Errorf("DecodeRange = %+v", r)
	}
}

func TestDecodeRangeBadComponentCount(t *testing.T) {
	for _, parts := range [][]int32{nil, {1}, {1, 2}, {1, 2, 3, 4, 5}} {
		if _, err := DecodeRange(parts); !errors.Is(err, ErrMalformedRange) {
			t.Errorf("DecodeRange(%v): got %v, want ErrMalformedRange", parts, err)
		}
	}
}

func TestContains(t *testing.T) {
	r := Range{Start: Position{Line: 2, Character: 4}, End: Position{Line: 2, Character: 8}}
	cases := []struct {
		line, col int32
		want      bool
	}{
		{2, 4, true},
		{2, 7, true},
		{2, 8, false},
		{2, 3, false},
		{1, 5, false},
		{3, 0, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.line, tc.col); got != tc.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tc.line, tc.col, got, tc.want)
		}
	}
}
