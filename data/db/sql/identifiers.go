package sql

// isSafeIdentifier 判断标识符是否只包含 [A-Za-z0-9_] 且不以数字开头，允许 a.b 形式
func isSafeIdentifier(name string) bool {
	if name == "" {
		return false
	}
	start := true
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch == '.':
			if start {
				return false
			}
			start = true
			continue
		case ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
		case ch >= '0' && ch <= '9':
			if start {
				return false
			}
		default:
			return false
		}
		start = false
	}
	return !start
}

func mustIdentifier(kind, name string) {
	if !isSafeIdentifier(name) {
		panic("sql: unsafe " + kind + " name " + name)
	}
}
