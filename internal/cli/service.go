package cli

import "reqfix/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
