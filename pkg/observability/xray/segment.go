package xray

// =============================================================================
// Subsegment 数据模型
//
// 字段与 X-Ray daemon 的 JSON 线上格式一一对应。完成态的判定是二选一的
// 不变量：要么 EndTime 已设置（完成），要么 InProgress 为 true（在途）。
// =============================================================================

// Subsegment 一条 segment/subsegment 记录。
type Subsegment struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StartTime Seconds  `json:"start_time"`
	EndTime   *Seconds `json:"end_time,omitempty"`

	// InProgress 在途标记。记录完成后该字段清零并从 JSON 中省略。
	InProgress bool `json:"in_progress,omitempty"`

	TraceID  string `json:"trace_id,omitempty"`
	ParentID string `json:"parent_id,omitempty"`

	// Type 独立上报的 subsegment 必须携带 "subsegment"，
	// daemon 据此将记录归并到所属 trace。
	Type string `json:"type,omitempty"`

	// Namespace 取值 "aws"、"remote" 或缺省。
	Namespace string `json:"namespace,omitempty"`

	AWS  *AwsOperation `json:"aws,omitempty"`
	HTTP *HTTPInfo     `json:"http,omitempty"`
}

// AwsOperation 云服务操作信息块。
type AwsOperation struct {
	Operation string `json:"operation,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HTTPInfo 远端 HTTP 调用信息块。
type HTTPInfo struct {
	Request  *HTTPRequest  `json:"request,omitempty"`
	Response *HTTPResponse `json:"response,omitempty"`
}

// HTTPRequest 出站请求信息。
type HTTPRequest struct {
	Method string `json:"method,omitempty"`
	URL    string `json:"url,omitempty"`
}

// HTTPResponse 响应信息。
type HTTPResponse struct {
	Status int `json:"status,omitempty"`
}

// =============================================================================
// 生命周期
// =============================================================================

// BeginSubsegment 创建一条在途 subsegment 记录。
//
// 生成新的 segment ID，start_time 取当前墙钟时间，in_progress=true，
// end_time 缺省。traceID/parentID 原样透传，允许为空。
func BeginSubsegment(traceID, parentID, name string) *Subsegment {
	return &Subsegment{
		ID:         NewSegmentID(),
		Name:       name,
		StartTime:  Now(),
		InProgress: true,
		TraceID:    traceID,
		ParentID:   parentID,
		Type:       "subsegment",
	}
}

// End 结束记录：设置 end_time 为当前时间并清除在途标记。
//
// 单次结束的纪律由会话状态机保证，重复调用不属于受支持的用法。
func (s *Subsegment) End() {
	now := Now()
	s.EndTime = &now
	s.InProgress = false
}

// =============================================================================
// 装饰 setter（set-if-absent 合并语义）
//
// 所有 setter 只在目标字段缺省时写入。进入阶段与结束阶段会向同一条记录
// 两次应用装饰，set-if-absent 保证两个阶段互不覆盖，且多个装饰器之间
// 没有顺序依赖。
// =============================================================================

// SetNamespace 设置顶层 namespace 字段（已存在时不覆盖）。
func (s *Subsegment) SetNamespace(namespace string) {
	if s.Namespace == "" {
		s.Namespace = namespace
	}
}

// SetAwsOperation 设置 aws.operation（已存在时不覆盖），按需分配 aws 块。
func (s *Subsegment) SetAwsOperation(operation string) {
	if s.AWS == nil {
		s.AWS = &AwsOperation{}
	}
	if s.AWS.Operation == "" {
		s.AWS.Operation = operation
	}
}

// SetAwsRequestID 设置 aws.request_id（已存在时不覆盖），按需分配 aws 块。
func (s *Subsegment) SetAwsRequestID(requestID string) {
	if s.AWS == nil {
		s.AWS = &AwsOperation{}
	}
	if s.AWS.RequestID == "" {
		s.AWS.RequestID = requestID
	}
}

// SetHTTPRequest 设置 http.request 的 method/url（各自已存在时不覆盖），
// 按需分配 http/request 块。
func (s *Subsegment) SetHTTPRequest(method, url string) {
	if s.HTTP == nil {
		s.HTTP = &HTTPInfo{}
	}
	if s.HTTP.Request == nil {
		s.HTTP.Request = &HTTPRequest{}
	}
	if s.HTTP.Request.Method == "" {
		s.HTTP.Request.Method = method
	}
	if s.HTTP.Request.URL == "" {
		s.HTTP.Request.URL = url
	}
}

// SetHTTPResponseStatus 设置 http.response.status（已存在时不覆盖）。
//
// request 块缺失时只分配 response 块：响应先于请求信息写入虽不符合
// 约定的调用顺序（进入时写请求、结束时写响应），但不应静默失败。
func (s *Subsegment) SetHTTPResponseStatus(status int) {
	if s.HTTP == nil {
		s.HTTP = &HTTPInfo{}
	}
	if s.HTTP.Response == nil {
		s.HTTP.Response = &HTTPResponse{}
	}
	if s.HTTP.Response.Status == 0 {
		s.HTTP.Response.Status = status
	}
}
