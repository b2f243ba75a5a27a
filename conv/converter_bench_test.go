package conv

import (
	"testing"
)

func BenchmarkConverter_MapToStruct(b *testing.B) {
	c := NewConverter(DefaultOptions())
	src := map[string]interface{}{
		"ID":      42,
		"Name":    "Jane",
		"Active":  true,
		"Balance": "99.5",
		"Opened":  "2023-01-15T12:30:45Z",
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var dst account
		if err := c.Convert(src, &dst); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkToSigned(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ToSigned[int32]("12345"); err != nil {
			b.Fatal(err)
		}
	}
}
