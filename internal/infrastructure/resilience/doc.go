/*
Package resilience provides a circuit breaker for flaky host commands.

# Overview

The bridge re-runs the software channel setup before every install and
update. When that keeps failing (no network, broken remote) the breaker
opens and the setup is skipped until a cooldown passes, so each request
does not pay for a doomed network round trip.

# Usage

	breaker := resilience.New("channel", resilience.Settings{
		Threshold: 3,
		Cooldown:  time.Minute,
		OnStateChange: func(name string, from, to resilience.State) {
			log.Info("breaker", zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	err := breaker.Do(func() error {
		return client.EnsureChannel(ctx)
	})

# States

	Closed --[Threshold failures]-> Open --[Cooldown]-> Half-Open --[success]-> Closed
	                                                        |
	                                                    [failure]
	                                                        v
	                                                      Open
*/
package resilience
