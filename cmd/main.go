package main

import (
	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/routes"
	"github.com/andrientheodore/Nutrichat/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
