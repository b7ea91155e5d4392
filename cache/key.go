package cache

import (
	"strconv"
	"strings"
)

// KeySeparator splits a cache key into the resource identifier and the
// request variant (resize, crop, rotation, transformations). Resource
// identifiers must not contain it.
const KeySeparator = '\n'

// Gravity positions a center crop inside the target box.
type Gravity int

const (
	GravityCenter Gravity = iota
	GravityTop
	GravityBottom
	GravityLeft
	GravityRight
)

func (g Gravity) String() string {
	switch g {
	case GravityTop:
		return "top"
	case GravityBottom:
		return "bottom"
	case GravityLeft:
		return "left"
	case GravityRight:
		return "right"
	default:
		return "center"
	}
}

// Variant describes how a decoded resource was transformed before caching.
// Two requests for the same resource with different variants are cached
// under different keys sharing the same resource prefix.
type Variant struct {
	Rotation        float64
	RotationPivot   bool
	PivotX, PivotY  float64
	Width, Height   int
	CenterCrop      bool
	CropGravity     Gravity
	CenterInside    bool
	Transformations []string
}

// Key builds the cache key for resource requested as v:
//
//	resource \n [rotation:R[@XxY]\n] [resize:WxH\n] [centerCrop:G\n | centerInside\n] [T\n]...
//
// The untransformed variant still ends with the separator so that every key
// can be invalidated by resource.
func Key(resource string, v Variant) string {
	var b strings.Builder
	b.Grow(len(resource) + 32)
	b.WriteString(resource)
	b.WriteByte(KeySeparator)

	if v.Rotation != 0 {
		b.WriteString("rotation:")
		b.WriteString(formatFloat(v.Rotation))
		if v.RotationPivot {
			b.WriteByte('@')
			b.WriteString(formatFloat(v.PivotX))
			b.WriteByte('x')
			b.WriteString(formatFloat(v.PivotY))
		}
		b.WriteByte(KeySeparator)
	}
	if v.Width != 0 || v.Height != 0 {
		b.WriteString("resize:")
		b.WriteString(strconv.Itoa(v.Width))
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(v.Height))
		b.WriteByte(KeySeparator)
	}
	switch {
	case v.CenterCrop:
		b.WriteString("centerCrop:")
		b.WriteString(v.CropGravity.String())
		b.WriteByte(KeySeparator)
	case v.CenterInside:
		b.WriteString("centerInside")
		b.WriteByte(KeySeparator)
	}
	for _, id := range v.Transformations {
		b.WriteString(id)
		b.WriteByte(KeySeparator)
	}
	return b.String()
}

// SplitKey returns the resource and variant parts of key.
// ok is false when key carries no separator.
func SplitKey(key string) (resource, variant string, ok bool) {
	i := strings.IndexByte(key, KeySeparator)
	if i < 0 {
		return key, "", false
	}
	return key[:i], key[i+1:], true
}

// hasResource reports whether key belongs to resource: the first separator
// sits right after a leading copy of resource.
func hasResource(key, resource string) bool {
	return strings.IndexByte(key, KeySeparator) == len(resource) && key[:len(resource)] == resource
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
