package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("bookings")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "event_id",
				CollectionId: events.Id,
				MaxSelect:    1,
				Required:     true,
			},
			&core.RelationField{
				Name:         "user_id",
				CollectionId: "_pb_users_auth_",
				MaxSelect:    1,
				Required:     true,
			},
			&core.NumberField{Name: "seats", Min: types.Pointer(1.0), OnlyInt: true, Required: true},
			&core.NumberField{Name: "total_amount", Min: types.Pointer(0.0)},
			&core.SelectField{
				Name:      "status",
				MaxSelect: 1,
				Values:    []string{"pending", "confirmed", "cancelled"},
			},
			&core.SelectField{
				Name:      "payment_method",
				MaxSelect: 1,
				Values:    []string{"jazzcash", "easypaisa", "nayapay", "sadapay"},
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
