package value

import "reflect"

// DescriptorOf maps a host primitive kind to a value Kind.
// bool maps to Int8 with an effective width of one bit (true/false), since
// the value model has no dedicated boolean category.
func DescriptorOf(goKind reflect.Kind) (Kind, int, bool) {
	switch goKind {
	case reflect.Uint8, reflect.Int8:
		return Int8, 8, true
	case reflect.Int16:
		return Int16, 16, true
	case reflect.Int32, reflect.Int:
		return Int32, 32, true
	case reflect.Float32, reflect.Float64:
		return Float32, 32, true
	case reflect.Bool:
		return Int8, 1, true
	case reflect.String:
		return String, 0, true
	default:
		return 0, 0, false
	}
}
