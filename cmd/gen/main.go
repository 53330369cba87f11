// Command gen generates typed gorm query helpers for the Postgres backends.
package main

import (
	"pharmanet/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	g := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	g.ApplyBasic(model.All()...)

	g.Execute()
}
