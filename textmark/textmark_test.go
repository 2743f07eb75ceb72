package textmark

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode(t *testing.T) {
	test := []struct {
		name    string
		cover   string
		payload []byte
	}{
		{"ascii", "hello world", []byte("hi")},
		{"empty cover", "", []byte("secret")},
		{"binary", "carrier", []byte{0x00, 0xFF, 0x80, 0x01}},
		{"multibyte cover", "こんにちは 世界", []byte("日本語")},
		{"empty payload", "plain", nil},
		{"emoji cover", "family \U0001F468\u200d\U0001F469\u200d\U0001F467 trip", []byte("hi")},
		{"persian cover", "\u0645\u06cc\u200c\u062e\u0648\u0627\u0647\u0645", []byte("\u0633\u0644\u0627\u0645")},
		{"cover ending in joiner", "a\u200d", []byte("z")},
		{"empty payload after joiner", "a\u200d", nil},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			stego := Encode(tt.cover, tt.payload)
			assert.True(t, strings.HasPrefix(stego, tt.cover))
			assert.Equal(t, tt.cover, Visible(stego))
			assert.Equal(t, len(tt.payload)*8, Count(stego))
			assert.Equal(t, len(tt.payload), len(Decode(stego)))
			if len(tt.payload) > 0 {
				assert.Equal(t, tt.payload, Decode(stego))
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	stego := Encode("hello world", []byte("hi"))
	marks := []rune(strings.TrimPrefix(stego, "hello world"))
	assert.Len(t, marks, 17)
	assert.Equal(t, End, marks[16])

	// 'h' = 0x68 = 0110 1000
	want := []rune{Zero, One, One, Zero, One, Zero, Zero, Zero}
	assert.Equal(t, want, marks[:8])
	assert.Equal(t, len("hello world")+17*3, len(stego))
	assert.Equal(t, 11+17, utf8.RuneCountInString(stego))
}

func TestDecode(t *testing.T) {
	hr := []rune{Zero, One, One, Zero, One, Zero, Zero, Zero}
	h := string(hr)
	test := []struct {
		name  string
		stego string
		want  []byte
	}{
		{"no marks", "just text", []byte{}},
		{"cover marks ignored", "a" + string(One) + "b" + string(End) + "c" + h + string(End), []byte("h")},
		{"split marks are not a payload", "a" + string(hr[:6]) + "b" + string(hr[6:]) + "c" + string(End), []byte{}},
		{"mark touching payload", "x" + string(One) + h + string(End), []byte("h")},
		{"text after payload", "x" + h + string(End) + " tail", []byte("h")},
		{"joiners only", "\U0001F468\u200d\U0001F469", []byte{}},
		{"stops at end", h + string(End) + h, []byte("h")},
		{"without terminator", h + h, []byte("hh")},
		{"partial group dropped", h + string([]rune{One, One, One}), []byte("h")},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.stego))
		})
	}
}

func TestCodec(t *testing.T) {
	t.Run("default terminates", func(t *testing.T) {
		c := New()
		stego := c.Encode("x", []byte("ok"))
		assert.Equal(t, Encode("x", []byte("ok")), stego)
		assert.Equal(t, []byte("ok"), c.Decode(stego))
	})
	t.Run("without terminator", func(t *testing.T) {
		c := New(WithTerminator(false))
		stego := c.Encode("x", []byte("ok"))
		assert.NotContains(t, stego, string(End))
		assert.Equal(t, 16, Count(stego))
		assert.Equal(t, []byte("ok"), c.Decode(stego))
		// appended text marks run on into the payload
		assert.Equal(t, []byte("okok"), c.Decode(stego+c.Encode("", []byte("ok"))))
	})
}

func TestVisible(t *testing.T) {
	h := string([]rune{Zero, One, One, Zero, One, Zero, Zero, Zero})
	test := []struct {
		name  string
		stego string
		want  string
	}{
		{"no marks", "no marks", "no marks"},
		{"payload removed", "abc" + h + string(End), "abc"},
		{"text after payload", "abc" + h + string(End) + " def", "abc def"},
		{"cover marks kept", "a" + string(Zero) + "b" + string(End) + "c" + h + string(End), "a" + string(Zero) + "b" + string(End) + "c"},
		{"without terminator", "abc" + h, "abc"},
		{"other zero-width characters", "a\u2060b", "a\u2060b"},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.stego))
		})
	}
}
