// Package form is the client side of the commitment form.
//
// A Controller keeps the field values, merges the day, month and year
// selects into one goal date, validates with the same rules as the server
// (using the form's own wording) and submits through a Sender, usually a
// Client posting to /api/send. Every outcome is reported to a Notifier as
// a Toast.
//
//	client, err := form.NewClient("https://example.com")
//	if err != nil {
//		return err
//	}
//	ctrl, err := form.NewController(client, form.WithNotifier(notifier))
//	if err != nil {
//		return err
//	}
//	ctrl.SetName("Jane Doe")
//	_ = ctrl.SetDay(15)
//	_ = ctrl.SetMonth(5) // June
//	_ = ctrl.SetYear(2026)
//	err = ctrl.Submit(ctx)
package form
