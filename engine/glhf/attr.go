package glhf

// AttrFormat defines names and types of OpenGL attributes (vertex format, uniform format, etc.).
//
// Example:
//
//	AttrFormat{{"position", Vec2}, {"color", Vec4}, {"texCoord", Vec2}}
type AttrFormat []Attr

// Size returns the total size of all attributes of the AttrFormat in bytes.
func (af AttrFormat) Size() int {
	total := 0
	for _, attr := range af {
		total += attr.Type.Size()
	}
	return total
}

// Attr represents an arbitrary OpenGL attribute, such as a vertex attribute or a shader
// uniform attribute.
type Attr struct {
	Name string
	Type AttrType
}

// AttrType represents the type of an OpenGL attribute.
type AttrType int

const (
	Int AttrType = iota
	Float
	Vec2
	Vec3
	Vec4
	Mat4
)

// Components returns the number of scalar components of an attribute of this type.
func (at AttrType) Components() int {
	switch at {
	case Int, Float:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat4:
		return 16
	}
	panic("components of attr type: invalid type")
}

// Size returns the size of a type in bytes.
func (at AttrType) Size() int {
	return at.Components() * SizeOfFloat32
}

func (at AttrType) String() string {
	switch at {
	case Int:
		return "int"
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat4:
		return "mat4"
	}
	return "invalid"
}

const SizeOfFloat32 = 4
