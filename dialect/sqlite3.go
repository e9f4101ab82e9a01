package dialect

type sqlite3 struct {
	common
}

func (sqlite3) Name() string {
	return "sqlite3"
}

func (sqlite3) DescribeTable(table string) (string, map[string]interface{}) {
	return "PRAGMA table_info(" + table + ")", nil
}
