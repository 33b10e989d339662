package model

// All lists the models cmd/migrate creates, parents first.
func All() []interface{} {
	return []interface{}{
		&Tag{},
		&Note{},
		&NotebookMember{},
	}
}
