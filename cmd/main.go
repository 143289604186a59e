package main

import (
	"github.com/divineshedrack33220/pulse-parcel/internal/app"
	"github.com/divineshedrack33220/pulse-parcel/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
