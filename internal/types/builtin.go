package types

import (
	"strings"
)

// builtinWidth возвращает размер встроенного типа C в байтах.
// ptr — ширина указателя/long для текущей цели. ok == false,
// если имя не является встроенным типом.
func builtinWidth(name string, ptr int) (int, bool) {
	switch name {
	case "char", "signed char", "unsigned char", "_Bool", "bool":
		return 1, true
	case "short", "short int", "signed short", "signed short int",
		"unsigned short", "unsigned short int":
		return 2, true
	case "int", "signed", "signed int", "unsigned", "unsigned int":
		return 4, true
	case "long", "long int", "signed long", "signed long int",
		"unsigned long", "unsigned long int":
		return ptr, true
	case "long long", "long long int", "signed long long", "signed long long int",
		"unsigned long long", "unsigned long long int":
		return 8, true
	case "float":
		return 4, true
	case "double", "long double":
		return 8, true
	case "void":
		return 0, true
	case "size_t", "ssize_t", "ptrdiff_t", "intptr_t", "uintptr_t":
		return ptr, true
	case "int8_t", "uint8_t":
		return 1, true
	case "int16_t", "uint16_t":
		return 2, true
	case "int32_t", "uint32_t", "wchar_t":
		return 4, true
	case "int64_t", "uint64_t":
		return 8, true
	default:
		return 0, false
	}
}

// NormalizeType канонизирует текст типа: убирает cv-квалификаторы и
// лишние пробелы. Хвостовая '*' сохраняется.
func NormalizeType(name string) string {
	pointer := strings.HasSuffix(name, "*")
	name = strings.TrimRight(name, "* \t")
	words := strings.Fields(name)
	out := words[:0]
	for _, w := range words {
		if w == "const" || w == "volatile" {
			continue
		}
		out = append(out, w)
	}
	s := strings.Join(out, " ")
	if pointer {
		s += "*"
	}
	return s
}

// BuiltinSize возвращает размер и выравнивание встроенного типа.
// Указатели (хвостовая '*') и перечисления тоже считаются встроенными.
func (t Target) BuiltinSize(name string) (size, align int, ok bool) {
	name = NormalizeType(name)
	if strings.HasSuffix(name, "*") {
		return t.PtrSize, t.PtrAlign, true
	}
	if name == "enum" || strings.HasPrefix(name, "enum ") {
		return 4, 4, true
	}
	w, ok := builtinWidth(name, t.PtrSize)
	if !ok {
		return 0, 0, false
	}
	if w == 0 {
		return 0, 1, true
	}
	return w, t.AlignForSize(w), true
}
