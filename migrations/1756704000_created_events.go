package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{Name: "title", Required: true},
			&core.TextField{Name: "description"},
			&core.TextField{Name: "venue", Required: true},
			&core.TextField{Name: "city", Required: true},
			&core.TextField{Name: "date", Required: true},
			&core.TextField{Name: "time"},
			&core.SelectField{
				Name:      "category",
				MaxSelect: 1,
				Values:    []string{"Concert", "Workshop", "Conference", "Sports", "Theatre", "Festival"},
			},
			&core.NumberField{Name: "price", Min: types.Pointer(0.0)},
			&core.URLField{Name: "image_url"},
			&core.RelationField{
				Name:         "organizer_id",
				CollectionId: "_pb_users_auth_",
				MaxSelect:    1,
			},
			&core.TextField{Name: "organizer_name"},
			&core.NumberField{Name: "total_seats", Min: types.Pointer(1.0), OnlyInt: true},
			&core.NumberField{Name: "available_seats", Min: types.Pointer(0.0), OnlyInt: true},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
