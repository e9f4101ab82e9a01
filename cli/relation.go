package cli

import (
	"fmt"
	"strings"
)

type RelationType string

const (
	HasMany   RelationType = "has_many"
	BelongsTo RelationType = "belongs_to"
)

// RelationInfo generated accessor method of a related entity
type RelationInfo struct {
	Method     string
	Target     string
	Type       RelationType
	ForeignKey string
}

// ParseRelations parses Method:Target:type:foreign_key entries separated by
// commas, e.g. Addresses:Address:has_many:user_id,Company:Company:belongs_to:company_id
func ParseRelations(value string) ([]RelationInfo, error) {
	var relations []RelationInfo
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		parts := strings.Split(item, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid relation %q, expected Method:Target:type:foreign_key", item)
		}

		relation := RelationInfo{Method: parts[0], Target: parts[1], Type: RelationType(parts[2]), ForeignKey: parts[3]}
		if relation.Type != HasMany && relation.Type != BelongsTo {
			return nil, fmt.Errorf("invalid relation type %q, expected %s or %s", parts[2], HasMany, BelongsTo)
		}
		relations = append(relations, relation)
	}
	return relations, nil
}
