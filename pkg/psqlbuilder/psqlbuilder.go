package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder общий StatementBuilder для PostgreSQL (placeholders вида $1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT запрос с PostgreSQL placeholders
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert создает INSERT запрос с PostgreSQL placeholders
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update создает UPDATE запрос с PostgreSQL placeholders
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete создает DELETE запрос с PostgreSQL placeholders
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}
