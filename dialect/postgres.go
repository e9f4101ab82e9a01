package dialect

const postgresColumns = "SELECT column_name, data_type, is_nullable, column_default FROM information_schema.columns" +
	" WHERE table_name = :table ORDER BY ordinal_position"

type postgres struct {
	common
}

func (postgres) Name() string {
	return "postgres"
}

func (postgres) SupportLastInsertId() bool {
	return false
}

func (postgres) DescribeTable(table string) (string, map[string]interface{}) {
	return postgresColumns, map[string]interface{}{"table": table}
}
