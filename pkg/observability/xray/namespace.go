package xray

// Namespace subsegment 的装饰策略。
//
// 两个能力：提供显示名，以及把领域字段合并进记录。合并必须遵循
// set-if-absent 语义（复用 Subsegment 的装饰 setter 即可），保证进入
// 与结束两个阶段对同一条记录的重复装饰互不破坏。
//
// 这是一个开放的扩展点：第三方命名空间只需实现这两个方法，
// 与会话没有其他耦合。
type Namespace interface {
	// Name 返回 subsegment 的显示名。prefix 是 Context 配置的名称前缀，
	// 实现可以忽略（内置实现中仅 CustomNamespace 采纳）。
	Name(prefix string) string

	// Decorate 将领域字段合并进记录（set-if-absent）。
	Decorate(s *Subsegment)
}

// =============================================================================
// AwsNamespace
// =============================================================================

// AwsNamespace AWS 服务操作的命名空间。
//
// subsegment 以服务名命名，namespace 字段为 "aws"，操作名写入
// aws.operation。request ID 与响应状态码可在会话存续期间通过
// SetRequestID / SetResponseStatus 回填，结束时的再次装饰会将其带上。
type AwsNamespace struct {
	service        string
	operation      string
	requestID      string
	responseStatus int
}

// NewAwsNamespace 创建 AWS 服务操作命名空间。
func NewAwsNamespace(service, operation string) *AwsNamespace {
	return &AwsNamespace{service: service, operation: operation}
}

// SetRequestID 回填请求 ID（通常来自服务响应的元数据）。
func (n *AwsNamespace) SetRequestID(requestID string) *AwsNamespace {
	n.requestID = requestID
	return n
}

// SetResponseStatus 回填响应状态码。
func (n *AwsNamespace) SetResponseStatus(status int) *AwsNamespace {
	n.responseStatus = status
	return n
}

// Name 实现 Namespace：显示名为服务名，忽略前缀。
func (n *AwsNamespace) Name(_ string) string {
	return n.service
}

// Decorate 实现 Namespace。
func (n *AwsNamespace) Decorate(s *Subsegment) {
	s.SetNamespace("aws")
	s.SetAwsOperation(n.operation)
	if n.requestID != "" {
		s.SetAwsRequestID(n.requestID)
	}
	if n.responseStatus != 0 {
		s.SetHTTPResponseStatus(n.responseStatus)
	}
}

// =============================================================================
// RemoteNamespace
// =============================================================================

// RemoteNamespace 任意远端服务调用的命名空间。
//
// namespace 字段为 "remote"，请求的 method/url 在进入时写入
// http.request，响应状态码可通过 SetResponseStatus 回填。
type RemoteNamespace struct {
	name           string
	method         string
	url            string
	responseStatus int
}

// NewRemoteNamespace 创建远端服务命名空间。
func NewRemoteNamespace(name, method, url string) *RemoteNamespace {
	return &RemoteNamespace{name: name, method: method, url: url}
}

// SetResponseStatus 回填响应状态码。
func (n *RemoteNamespace) SetResponseStatus(status int) *RemoteNamespace {
	n.responseStatus = status
	return n
}

// Name 实现 Namespace：显示名为配置的名称，忽略前缀。
func (n *RemoteNamespace) Name(_ string) string {
	return n.name
}

// Decorate 实现 Namespace。
func (n *RemoteNamespace) Decorate(s *Subsegment) {
	s.SetNamespace("remote")
	s.SetHTTPRequest(n.method, n.url)
	if n.responseStatus != 0 {
		s.SetHTTPResponseStatus(n.responseStatus)
	}
}

// =============================================================================
// CustomNamespace
// =============================================================================

// CustomNamespace 自定义 subsegment 的命名空间。
//
// 显示名为 Context 配置的前缀 + 名称，装饰为空操作。
type CustomNamespace struct {
	name string
}

// NewCustomNamespace 创建自定义命名空间。
func NewCustomNamespace(name string) *CustomNamespace {
	return &CustomNamespace{name: name}
}

// Name 实现 Namespace：前缀 + 名称。
func (n *CustomNamespace) Name(prefix string) string {
	return prefix + n.name
}

// Decorate 实现 Namespace：无领域字段，什么都不做。
func (n *CustomNamespace) Decorate(_ *Subsegment) {}
