/*
Package httpserver runs the gateway's HTTP listener.

The router is chi with panic recovery, optional real-IP extraction for
deployments behind a trusted proxy, and slog access logging. Application
routes come from a router.Dispatcher; the server adds its own operational
endpoints:

  - GET /livez - liveness, always 200 {"status":"alive"}
  - GET /readyz - readiness, 503 while draining
  - GET /drain - mark the server not ready
  - GET /undrain - mark the server ready again
  - /debug/* - pprof, when EnablePprof is set

Prometheus metrics are served on a separate listener (MetricsAddr).

Shutdown first marks the server not ready and waits DrainDuration, then
stops accepting connections and waits up to GracefulShutdownDuration for
in-flight requests.
*/
package httpserver
