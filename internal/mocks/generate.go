package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Feed --dir ../domain/odds --output domain/odds --outpkg oddsmock --filename feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Feed --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Directory --dir ../domain/team --output domain/team --outpkg teammock --filename directory_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Directory --dir ../domain/league --output domain/league --outpkg leaguemock --filename directory_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Reader --dir ../domain/standing --output domain/standing --outpkg standingmock --filename reader_mock.go
