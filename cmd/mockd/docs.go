package main

// General API documentation for swaggo.
//
// @title           mockd API
// @version         1.0
// @description     Mock model-server HTTP API for exercising modeldctl.
//
// @contact.name   modeldctl maintainers
// @contact.url    https://github.com/your-org/modeldctl
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
