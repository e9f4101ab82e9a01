package dialect

type mysql struct{}

func (mysql) Name() string {
	return "mysql"
}

func (mysql) SupportLastInsertId() bool {
	return true
}

func (mysql) InsertDefaults(table string) string {
	return "INSERT INTO " + table + " () VALUES ()"
}

func (mysql) DescribeTable(table string) (string, map[string]interface{}) {
	return "DESCRIBE " + table, nil
}
