// Command decorhub runs the decoration booking API and its maintenance
// tasks.
//
//	decorhub serve                     # start the HTTP server
//	decorhub route:list                # list API routes
//	decorhub db:index                  # create MongoDB indexes
//	decorhub db:seed                   # insert starter catalog services
//	decorhub user:role <email> <role>  # set a role, e.g. bootstrap the first admin
//	decorhub token <email>             # mint a dev token (AUTH_DRIVER=jwt)
//
// Configuration comes from config/app.json, .env and the environment, in
// increasing order of precedence.
package main
