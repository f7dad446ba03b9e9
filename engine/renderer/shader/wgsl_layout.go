package shader

import (
	"strconv"
	"strings"
)

// wgslTypeLayout is the host-shareable size and alignment of a WGSL type.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var primitiveLayouts = map[string]wgslTypeLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2f":       {8, 8},
	"vec2<u32>":   {8, 8},
	"vec3<f32>":   {12, 16},
	"vec3f":       {12, 16},
	"vec3<u32>":   {12, 16},
	"vec4<f32>":   {16, 16},
	"vec4f":       {16, 16},
	"vec4<u32>":   {16, 16},
	"mat3x3<f32>": {48, 16},
	"mat3x3f":     {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

func alignUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// resolveLayout resolves primitives, known structs, and fixed-size arrays.
func resolveLayout(typeName string, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if l, ok := primitiveLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := known[typeName]; ok {
		return l, true
	}
	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return wgslTypeLayout{}, false
	}
	elem, count, fixed := strings.Cut(strings.TrimSuffix(inner, ">"), ",")
	el, ok := resolveLayout(strings.TrimSpace(elem), known)
	if !ok {
		return wgslTypeLayout{}, false
	}
	stride := alignUp(el.align, el.size)
	if !fixed {
		return wgslTypeLayout{stride, el.align}, true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{n * stride, el.align}, true
}

func structLayout(sd structDecl, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	var offset uint64
	align := uint64(1)
	for _, f := range sd.fields {
		if f.builtin {
			continue
		}
		fl, ok := resolveLayout(f.typeName, known)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = alignUp(fl.align, offset) + fl.size
		align = max(align, fl.align)
	}
	return wgslTypeLayout{alignUp(align, offset), align}, true
}

// computeStructLayouts resolves structs in passes so nested structs may be declared in any order.
func computeStructLayouts(structs []structDecl) map[string]wgslTypeLayout {
	known := make(map[string]wgslTypeLayout, len(structs))
	pending := structs
	for len(pending) > 0 {
		var next []structDecl
		for _, sd := range pending {
			if l, ok := structLayout(sd, known); ok {
				known[sd.name] = l
			} else {
				next = append(next, sd)
			}
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}
	return known
}
