package influx

import "time"

type Option func(*Influx)

func Credentials(user, password string) Option {
	return func(i *Influx) {
		i.user = user
		i.password = password
	}
}

func Database(name string) Option {
	return func(i *Influx) {
		i.Database = name
	}
}

func SSL(enabled bool) Option {
	return func(i *Influx) {
		i.ssl = enabled
	}
}

func InsecureSkipVerify(skip bool) Option {
	return func(i *Influx) {
		i.insecureSkipVerify = skip
	}
}

// Timeout bounds a single HTTP exchange with the server. Zero means no timeout.
func Timeout(timeout time.Duration) Option {
	return func(i *Influx) {
		i.timeout = timeout
	}
}
