package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	const uri = "https://example.com/a.png"
	tests := []struct {
		name string
		v    Variant
		want string
	}{
		{name: "plain", v: Variant{}, want: uri + "\n"},
		{name: "resize", v: Variant{Width: 120, Height: 80}, want: uri + "\nresize:120x80\n"},
		{
			name: "rotation with pivot",
			v:    Variant{Rotation: 90.5, RotationPivot: true, PivotX: 10, PivotY: 20.25},
			want: uri + "\nrotation:90.5@10x20.25\n",
		},
		{
			name: "crop wins over inside",
			v:    Variant{Width: 50, Height: 50, CenterCrop: true, CropGravity: GravityTop, CenterInside: true},
			want: uri + "\nresize:50x50\ncenterCrop:top\n",
		},
		{name: "inside", v: Variant{CenterInside: true}, want: uri + "\ncenterInside\n"},
		{
			name: "transformations keep order",
			v:    Variant{Transformations: []string{"blur(3)", "grayscale"}},
			want: uri + "\nblur(3)\ngrayscale\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(uri, tt.v)
			require.Equal(t, tt.want, got)
			require.True(t, hasResource(got, uri))
		})
	}
}

func TestSplitKey(t *testing.T) {
	t.Parallel()

	res, variant, ok := SplitKey(Key("r1", Variant{Width: 1, Height: 2}))
	require.True(t, ok)
	require.Equal(t, "r1", res)
	require.Equal(t, "resize:1x2\n", variant)

	res, variant, ok = SplitKey("bare")
	require.False(t, ok)
	require.Equal(t, "bare", res)
	require.Empty(t, variant)
}

func TestHasResource(t *testing.T) {
	t.Parallel()

	require.True(t, hasResource("a\nx", "a"))
	require.True(t, hasResource("\nx", ""))
	require.False(t, hasResource("ab\nx", "a"))
	require.False(t, hasResource("a", "a"))
	require.False(t, hasResource("b\nx", "a"))
	require.False(t, hasResource("a\nb\nx", "a\nb"), "resource cannot contain the separator")
}
