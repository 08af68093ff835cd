// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/backend/clike"
)

// Reserved words of FXC and DXC, their intrinsics and system semantics.
const (
	fxcKeywords = `
AppendStructuredBuffer asm asm_fragment auto BlendState bool break
Buffer ByteAddressBuffer case catch cbuffer centroid char class
column_major compile compile_fragment CompileShader ComputeShader
const const_cast ConsumeStructuredBuffer continue default delete
DepthStencilState DepthStencilView discard do DomainShader double
dword dynamic_cast else enum explicit export extern false float for
friend fxgroup GeometryShader goto groupshared half Hullshader if in
inline inout InputPatch int interface line lineadj linear LineStream
long matrix min10float min12int min16float min16int min16uint
mutable namespace new nointerpolation noperspective NULL operator
out OutputPatch packoffset pass pixelfragment PixelShader point
PointStream precise private protected public RasterizerState
register reinterpret_cast RenderTargetView return row_major RWBuffer
RWByteAddressBuffer RWStructuredBuffer RWTexture1D RWTexture1DArray
RWTexture2D RWTexture2DArray RWTexture3D sample sampler
SamplerComparisonState SamplerState shared short signed sizeof snorm
stateblock stateblock_state static static_cast string struct
StructuredBuffer switch tbuffer technique technique10 technique11
template texture Texture1D Texture1DArray Texture2D Texture2DArray
Texture2DMS Texture2DMSArray Texture3D TextureCube TextureCubeArray
this throw triangle triangleadj TriangleStream true try typedef
typename uint uniform union unorm unsigned using vector
vertexfragment VertexShader virtual void volatile while`

	fxcIntrinsics = `
abort abs acos all AllMemoryBarrier AllMemoryBarrierWithGroupSync
any asdouble asfloat asin asint asuint atan atan2 ceil
CheckAccessFullyMapped clamp clip cos cosh countbits cross
D3DCOLORtoUBYTE4 ddx ddx_coarse ddx_fine ddy ddy_coarse ddy_fine
degrees determinant DeviceMemoryBarrier
DeviceMemoryBarrierWithGroupSync distance dot dst errorf
EvaluateAttributeAtSample EvaluateAttributeCentroid
EvaluateAttributeSnapped exp exp2 f16tof32 f32tof16 faceforward
firstbithigh firstbitlow floor fma fmod frac frexp fwidth
GetRenderTargetSampleCount GetRenderTargetSamplePosition
GroupMemoryBarrier GroupMemoryBarrierWithGroupSync InterlockedAdd
InterlockedAnd InterlockedCompareExchange InterlockedCompareStore
InterlockedExchange InterlockedMax InterlockedMin InterlockedOr
InterlockedXor isfinite isinf isnan ldexp length lerp lit log log10
log2 mad max min modf msad4 mul noise normalize pow printf
Process2DQuadTessFactorsAvg Process2DQuadTessFactorsMax
Process2DQuadTessFactorsMin ProcessIsolineTessFactors
ProcessQuadTessFactorsAvg ProcessQuadTessFactorsMax
ProcessQuadTessFactorsMin ProcessTriTessFactorsAvg
ProcessTriTessFactorsMax ProcessTriTessFactorsMin radians rcp
reflect refract reversebits round rsqrt saturate sign sin sincos
sinh smoothstep sqrt step tan tanh tex1D tex1Dbias tex1Dgrad
tex1Dlod tex1Dproj tex2D tex2Dbias tex2Dgrad tex2Dlod tex2Dproj
tex3D tex3Dbias tex3Dgrad tex3Dlod tex3Dproj texCUBE texCUBEbias
texCUBEgrad texCUBElod texCUBEproj transpose trunc`

	dxcKeywords = `
__abstract __alignof __asm __asm__ __assume __attribute __auto_type
__based __box __builtin_choose_expr __builtin_offsetof
__builtin_va_arg __cdecl __clrcall __declspec __delegate __event
__except __extension__ __fastcall __finally __forceinline __func__
__FUNCDNAME__ __FUNCSIG__ __FUNCTION__ __gc
__has_nothrow_move_assign __has_nothrow_move_constructor
__has_trivial_move_assign __has_trivial_move_constructor __hook
__identifier __if_exists __if_not_exists __imag __inline __int128
__int16 __int32 __int64 __int8 __interface __is_aggregate
__is_assignable __is_constructible __is_destructible __is_final
__is_interface_class __is_nothrow_assignable
__is_nothrow_constructible __is_nothrow_destructible __is_sealed
__is_trivially_assignable __is_trivially_constructible
__is_trivially_copyable __is_trivially_destructible __label__
__leave __m128 __m128d __m128i __m64 __multiple_inheritance __nogc
__noop __null __objc_no __objc_yes __pin __PRETTY_FUNCTION__
__property __ptr32 __ptr64 __raise __real __restrict __sealed
__single_inheritance __sptr __stdcall __super __thiscall __thread
__try __try_cast __typeof __unaligned __underlying_type __unhook
__uptr __uuidof __value __vectorcall __virtual_inheritance __w64
__wchar_t _Alignas _Alignof _asm _Atomic _Bool _Complex _Decimal128
_Decimal32 _Decimal64 _Generic _Imaginary _Noreturn _Static_assert
_Thread_local alignas alignof attributes char16_t char32_t char8_t
co_await co_return co_yield concept ConstantBuffer consteval
constexpr constinit decltype FeedbackTexture2D
FeedbackTexture2DArray globallycoherent indices L__FUNCTION__
noexcept nullptr payload primitives RasterizerOrderedBuffer
RasterizerOrderedByteAddressBuffer RasterizerOrderedStructuredBuffer
RasterizerOrderedTexture1D RasterizerOrderedTexture1DArray
RasterizerOrderedTexture2D RasterizerOrderedTexture2DArray
RasterizerOrderedTexture3D RayDesc RayQuery
RaytracingAccelerationStructure requires RWTexture2DMS
RWTexture2DMSArray RWTextureCube RWTextureCubeArray static_assert
TextureBuffer thread_local typeid typeof vertices wchar_t`

	dxcIntrinsics = `
AcceptHitAndEndSearch AllocateRayQuery CallShader
CreateResourceFromHeap DispatchMesh DispatchRaysDimensions
DispatchRaysIndex GeometryIndex HitKind IgnoreHit InstanceID
InstanceIndex IsHelperLane ObjectRayDirection ObjectRayOrigin
ObjectToWorld ObjectToWorld3x4 ObjectToWorld4x3 PrimitiveIndex
QuadAll QuadAny QuadReadAcrossDiagonal QuadReadAcrossX
QuadReadAcrossY QuadReadLaneAt RayFlags RayTCurrent RayTMin
ReportHit SetMeshOutputCounts TraceRay WaveActiveAllEqual
WaveActiveAllTrue WaveActiveAnyTrue WaveActiveBallot
WaveActiveBitAnd WaveActiveBitOr WaveActiveBitXor
WaveActiveCountBits WaveActiveMax WaveActiveMin WaveActiveProduct
WaveActiveSum WaveGetLaneCount WaveGetLaneIndex WaveIsFirstLane
WaveMatch WaveMultiPrefixBitAnd WaveMultiPrefixBitOr
WaveMultiPrefixBitXor WaveMultiPrefixCountBits
WaveMultiPrefixProduct WaveMultiPrefixSum WavePrefixCountBits
WavePrefixProduct WavePrefixSum WaveReadLaneAt WaveReadLaneFirst
WorldRayDirection WorldRayOrigin WorldToObject WorldToObject3x4
WorldToObject4x3`

	semanticNames = `
SV_Barycentrics SV_ClipDistance SV_Coverage SV_CullDistance
SV_CullPrimitive SV_Depth SV_DispatchThreadID SV_GroupID
SV_GroupIndex SV_GroupThreadID SV_GSInstanceID SV_InsideTessFactor
SV_InstanceID SV_IsFrontFace SV_OutputControlPointID SV_Position
SV_PrimitiveID SV_RenderTargetArrayIndex SV_SampleIndex
SV_ShadingRate SV_StencilRef SV_Target SV_TessFactor SV_VertexID
SV_ViewportArrayIndex`
)

// generated holds names the stage writers declare themselves.
const generated = "vs_main fs_main cs_main VertexInput VertexOutput FragmentInput FragmentOutput ComputeInput"

// keywords is the escape set of the HLSL dialect. Type shorthands such as
// float3 or uint2x2 are reserved as well.
var keywords = clike.NewKeywords(fxcKeywords, fxcIntrinsics, dxcKeywords, dxcIntrinsics, semanticNames, generated, typeShorthands())

// caseInsensitive keywords collide regardless of spelling.
var caseInsensitive = clike.NewKeywords("asm decl pass technique texture1d texture2d texture3d texturecube")

func escape(name string) string {
	if keywords.Has(name) || caseInsensitive.Has(strings.ToLower(name)) {
		return name + "_"
	}
	return name
}

func typeShorthands() string {
	var s string
	for _, base := range []string{
		"bool", "int", "uint", "dword", "half", "float", "double",
		"min10float", "min16float", "min12int", "min16int", "min16uint",
		"int16_t", "int32_t", "int64_t", "uint16_t", "uint32_t", "uint64_t",
		"float16_t", "float32_t", "float64_t",
	} {
		s += base + " "
		for n := 1; n <= 4; n++ {
			s += fmt.Sprintf("%s%d ", base, n)
			for m := 1; m <= 4; m++ {
				s += fmt.Sprintf("%s%dx%d ", base, n, m)
			}
		}
	}
	return s
}
